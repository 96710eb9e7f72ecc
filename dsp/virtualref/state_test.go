package virtualref

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	src, err := NewStage(5, WithGlobalGain(0.75))
	require.NoError(t, err)

	m := src.Matrix()
	require.NoError(t, m.SetValue(0, 1, 1))
	require.NoError(t, m.SetValue(0, 4, 2.5))
	require.NoError(t, m.SetValue(3, 2, 0.125))
	require.NoError(t, m.SetValue(4, 4, 1))
	require.NoError(t, m.SetValue(2, 2, -1))

	var buf bytes.Buffer
	require.NoError(t, src.SaveState(&buf))

	dst, err := NewStage(5)
	require.NoError(t, err)
	require.NoError(t, dst.LoadState(&buf))

	assert.Equal(t, src.Matrix().ActiveEntries(), dst.Matrix().ActiveEntries())
	assert.Equal(t, float32(0.75), dst.GlobalGain())

	for r := range 5 {
		for c := range 5 {
			if src.Matrix().Get(r, c) > 0 {
				continue
			}

			assert.Zero(t, dst.Matrix().Get(r, c), "cell (%d, %d)", r, c)
		}
	}
}

func TestSaveStateShape(t *testing.T) {
	s, err := NewStage(3, WithGlobalGain(2))
	require.NoError(t, err)
	require.NoError(t, s.Matrix().SetValue(0, 1, 1))
	require.NoError(t, s.Matrix().SetValue(0, 2, 0.5))
	require.NoError(t, s.Matrix().SetValue(2, 0, 1))
	require.NoError(t, s.Matrix().SetValue(1, 1, -4))

	var buf bytes.Buffer
	require.NoError(t, s.SaveState(&buf))

	want := `<?xml version="1.0" encoding="UTF-8"?>
<STATE Type="VirtualRef">
  <PARAMETERS GlobalGain="2" NumChannels="3"></PARAMETERS>
  <REFERENCES>
    <CHANNEL Index="1">
      <REFERENCE Index="2" Value="1"></REFERENCE>
      <REFERENCE Index="3" Value="0.5"></REFERENCE>
    </CHANNEL>
    <CHANNEL Index="3">
      <REFERENCE Index="1" Value="1"></REFERENCE>
    </CHANNEL>
  </REFERENCES>
</STATE>
`
	assert.Equal(t, want, buf.String())
}

func TestLoadStateClearsAndSkipsOutOfRange(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	s, err := NewStage(2, WithLogger(logger))
	require.NoError(t, err)
	s.Matrix().SetAll(1)

	doc := `<STATE Type="VirtualRef">
  <PARAMETERS GlobalGain="0.5" NumChannels="4"/>
  <REFERENCES>
    <CHANNEL Index="1">
      <REFERENCE Index="2" Value="3"/>
      <REFERENCE Index="4" Value="1"/>
    </CHANNEL>
    <CHANNEL Index="0">
      <REFERENCE Index="1" Value="1"/>
    </CHANNEL>
  </REFERENCES>
</STATE>`

	require.NoError(t, s.LoadState(strings.NewReader(doc)))

	assert.Equal(t, float32(0.5), s.GlobalGain())
	assert.Equal(t, float32(0), s.Matrix().Get(0, 0))
	assert.Equal(t, float32(3), s.Matrix().Get(0, 1))
	assert.Equal(t, float32(0), s.Matrix().Get(1, 0))
	assert.Equal(t, float32(0), s.Matrix().Get(1, 1))

	assert.Equal(t, 2, strings.Count(logs.String(), "skipping reference outside the matrix"))
}

func TestLoadStateMissingGainKeepsCurrent(t *testing.T) {
	s, err := NewStage(2, WithGlobalGain(3))
	require.NoError(t, err)

	require.NoError(t, s.LoadState(strings.NewReader(`<STATE><REFERENCES/></STATE>`)))
	assert.Equal(t, float32(3), s.GlobalGain())
}

func TestLoadStateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed", doc: `<STATE><PARAMETERS GlobalGain="1"`},
		{name: "wrong root", doc: `<OTHER/>`},
		{name: "wrong type", doc: `<STATE Type="Filter"/>`},
		{name: "bad number", doc: `<STATE><PARAMETERS GlobalGain="loud"/></STATE>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStage(2, WithGlobalGain(0.25))
			require.NoError(t, err)
			require.NoError(t, s.Matrix().SetValue(1, 0, 1))

			err = s.LoadState(strings.NewReader(tt.doc))
			require.Error(t, err)

			assert.Equal(t, float32(0.25), s.GlobalGain())
			assert.Equal(t, float32(1), s.Matrix().Get(1, 0))
		})
	}
}
