package stagechain

import (
	"encoding/json"
	"io"
	"strings"
)

// stubRuntime is a minimal Runtime implementation for testing.
type stubRuntime struct {
	configureErr   error
	configureCalls int
	processCalls   int
	channelUpdates []int
	lastCtx        Context
	lastParams     Params
}

func (s *stubRuntime) Configure(ctx Context, params Params) error {
	s.configureCalls++
	s.lastCtx = ctx
	s.lastParams = params

	return s.configureErr
}

func (s *stubRuntime) Process(_ [][]float32) {
	s.processCalls++
}

func (s *stubRuntime) UpdateSettings(numChannels int) {
	s.channelUpdates = append(s.channelUpdates, numChannels)
}

// gainRuntime multiplies every sample by a fixed gain.
type gainRuntime struct {
	gain float32
}

func (g *gainRuntime) Configure(_ Context, params Params) error {
	g.gain = float32(params.GetNum("gain", 1.0))

	return nil
}

func (g *gainRuntime) Process(block [][]float32) {
	for _, ch := range block {
		for i := range ch {
			ch[i] *= g.gain
		}
	}
}

// textStateRuntime stores a single string as its persistent state.
type textStateRuntime struct {
	stubRuntime

	state string
}

func (s *textStateRuntime) SaveState(w io.Writer) error {
	_, err := io.WriteString(w, s.state)

	return err
}

func (s *textStateRuntime) LoadState(r io.Reader) error {
	var sb strings.Builder

	_, err := io.Copy(&sb, r)
	if err != nil {
		return err
	}

	s.state = sb.String()

	return nil
}

func testRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("stub", func(_ Context) (Runtime, error) {
		return &stubRuntime{}, nil
	})
	r.MustRegister("gain", func(_ Context) (Runtime, error) {
		return &gainRuntime{}, nil
	})
	r.MustRegister("text", func(_ Context) (Runtime, error) {
		return &textStateRuntime{}, nil
	})

	return r
}

// buildGraphJSON is a helper to construct valid JSON graphs for testing.
func buildGraphJSON(nodes []graphNode, connections []graphConnection) string {
	data, err := json.Marshal(graphState{Nodes: nodes, Connections: connections})
	if err != nil {
		panic(err)
	}

	return string(data)
}

// linearGraph connects _input -> nodes... -> _output in order.
func linearGraph(nodes ...graphNode) string {
	all := append([]graphNode{{ID: InputNodeID, Type: InputNodeID}}, nodes...)
	all = append(all, graphNode{ID: OutputNodeID, Type: OutputNodeID})

	conns := make([]graphConnection, 0, len(all)-1)
	for i := 1; i < len(all); i++ {
		conns = append(conns, graphConnection{From: all[i-1].ID, To: all[i].ID})
	}

	return buildGraphJSON(all, conns)
}
