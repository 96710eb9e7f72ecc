package virtualref

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

const stateType = "VirtualRef"

var errStateType = errors.New("virtualref: state belongs to another processor type")

type stateXML struct {
	XMLName    xml.Name      `xml:"STATE"`
	Type       string        `xml:"Type,attr,omitempty"`
	Parameters parametersXML `xml:"PARAMETERS"`
	References referencesXML `xml:"REFERENCES"`
}

type parametersXML struct {
	GlobalGain  *float32 `xml:"GlobalGain,attr"`
	NumChannels *int     `xml:"NumChannels,attr"`
}

type referencesXML struct {
	Channels []channelXML `xml:"CHANNEL"`
}

type channelXML struct {
	Index      int            `xml:"Index,attr"`
	References []referenceXML `xml:"REFERENCE"`
}

type referenceXML struct {
	Index int     `xml:"Index,attr"`
	Value float32 `xml:"Value,attr"`
}

// SaveState writes the gain and every active matrix entry as XML. Cells <= 0
// and channels without active cells are omitted.
func (s *Stage) SaveState(w io.Writer) error {
	gain := s.gain
	n := s.matrix.NumChannels()

	st := stateXML{
		Type: stateType,
		Parameters: parametersXML{
			GlobalGain:  &gain,
			NumChannels: &n,
		},
	}

	for _, e := range s.matrix.ActiveEntries() {
		last := len(st.References.Channels) - 1
		if last < 0 || st.References.Channels[last].Index != e.Row+1 {
			st.References.Channels = append(st.References.Channels, channelXML{Index: e.Row + 1})
			last++
		}

		ch := &st.References.Channels[last]
		ch.References = append(ch.References, referenceXML{Index: e.Col + 1, Value: e.Value})
	}

	_, err := io.WriteString(w, xml.Header)
	if err != nil {
		return fmt.Errorf("virtualref: save state: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	err = enc.Encode(st)
	if err != nil {
		return fmt.Errorf("virtualref: save state: %w", err)
	}

	_, err = io.WriteString(w, "\n")
	if err != nil {
		return fmt.Errorf("virtualref: save state: %w", err)
	}

	return nil
}

// LoadState replaces the stage configuration with the one read from r.
//
// The matrix keeps its current size and is cleared before the stored entries
// are applied. Entries outside the matrix are logged and skipped. A missing
// GlobalGain attribute keeps the current gain. A document that cannot be
// decoded leaves the stage untouched.
func (s *Stage) LoadState(r io.Reader) error {
	var st stateXML

	err := xml.NewDecoder(r).Decode(&st)
	if err != nil {
		return fmt.Errorf("virtualref: load state: %w", err)
	}

	if st.Type != "" && st.Type != stateType {
		return fmt.Errorf("%w: %q", errStateType, st.Type)
	}

	if saved := st.Parameters.NumChannels; saved != nil && *saved != s.matrix.NumChannels() {
		s.logger.Debug("virtualref: state saved for a different channel count",
			"saved_channels", *saved, "channels", s.matrix.NumChannels())
	}

	s.matrix.Clear()

	for _, ch := range st.References.Channels {
		for _, ref := range ch.References {
			err := s.matrix.SetValue(ch.Index-1, ref.Index-1, ref.Value)
			if err != nil {
				s.logger.Warn("virtualref: skipping reference outside the matrix",
					"channel", ch.Index, "reference", ref.Index, "value", ref.Value, "err", err)
			}
		}
	}

	if st.Parameters.GlobalGain != nil {
		s.gain = *st.Parameters.GlobalGain
	}

	return nil
}
