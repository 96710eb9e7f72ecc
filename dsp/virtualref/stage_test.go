package virtualref

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-vref/internal/testutil"
)

func TestNewStageDefaults(t *testing.T) {
	t.Parallel()

	s, err := NewStage(4)
	if err != nil {
		t.Fatalf("NewStage() error = %v", err)
	}

	if s.NumChannels() != 4 || s.Matrix().NumChannels() != 4 {
		t.Fatalf("channels = %d/%d, want 4", s.NumChannels(), s.Matrix().NumChannels())
	}

	if s.GlobalGain() != 1 {
		t.Fatalf("GlobalGain() = %v, want 1", s.GlobalGain())
	}

	if got := len(s.Matrix().ActiveEntries()); got != 0 {
		t.Fatalf("new stage has %d active entries, want 0", got)
	}
}

func TestNewStageOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		opts     []StageOption
		wantErr  bool
		wantGain float32
	}{
		{name: "gain", channels: 2, opts: []StageOption{WithGlobalGain(0.5)}, wantGain: 0.5},
		{name: "nil option skipped", channels: 2, opts: []StageOption{nil, WithBlockSize(64)}, wantGain: 1},
		{name: "nil logger keeps default", channels: 2, opts: []StageOption{WithLogger(nil)}, wantGain: 1},
		{name: "NaN gain", channels: 2, opts: []StageOption{WithGlobalGain(math.NaN())}, wantErr: true},
		{name: "Inf gain", channels: 2, opts: []StageOption{WithGlobalGain(math.Inf(1))}, wantErr: true},
		{name: "zero block size", channels: 2, opts: []StageOption{WithBlockSize(0)}, wantErr: true},
		{name: "negative channels", channels: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := NewStage(tt.channels, tt.opts...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}

				return
			}

			if err != nil {
				t.Fatalf("NewStage() error = %v", err)
			}

			if s.GlobalGain() != tt.wantGain {
				t.Fatalf("GlobalGain() = %v, want %v", s.GlobalGain(), tt.wantGain)
			}
		})
	}
}

func TestStageUpdateSettings(t *testing.T) {
	t.Parallel()

	s, err := NewStage(3)
	if err != nil {
		t.Fatalf("NewStage() error = %v", err)
	}

	s.Matrix().SetAll(1)

	s.UpdateSettings(3)

	if !s.Matrix().AllReferencesActive(0) {
		t.Fatal("unchanged channel count must keep the matrix")
	}

	s.UpdateSettings(5)

	if s.NumChannels() != 5 {
		t.Fatalf("NumChannels() = %d, want 5", s.NumChannels())
	}

	if got := len(s.Matrix().ActiveEntries()); got != 0 {
		t.Fatalf("%d active entries after resize, want 0", got)
	}
}

func TestStageProcessUsesGain(t *testing.T) {
	t.Parallel()

	s, err := NewStage(2, WithBlockSize(4), WithGlobalGain(2))
	if err != nil {
		t.Fatalf("NewStage() error = %v", err)
	}

	_ = s.Matrix().SetValue(0, 1, 1)

	block := [][]float32{{1, 1, 1, 1}, {0.5, 1, -1, 0}}
	s.Process(block)

	want := [][]float32{{0, -1, 3, 1}, {0.5, 1, -1, 0}}
	testutil.RequireBlockNearlyEqual(t, block, want, 0)

	s.SetGlobalGain(0)
	s.Process(block)
	testutil.RequireBlockNearlyEqual(t, block, want, 0)
}

func TestStageProcessAfterGrowingChannels(t *testing.T) {
	t.Parallel()

	s, err := NewStage(1, WithBlockSize(8))
	if err != nil {
		t.Fatalf("NewStage() error = %v", err)
	}

	s.UpdateSettings(6)
	s.Matrix().SetAll(1)

	in := testutil.DeterministicBlock(5, 1, 6, 8)
	block := testutil.CloneBlock(in)
	s.Process(block)

	testutil.RequireBlockNearlyEqual(t, block, referenceOutput(in, s.Matrix(), 1), 1e-6)
}
