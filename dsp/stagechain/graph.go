package stagechain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

const (
	// InputNodeID is the reserved node ID for the chain input.
	InputNodeID = "_input"
	// OutputNodeID is the reserved node ID for the chain output.
	OutputNodeID = "_output"
)

var (
	errGraphCycle     = errors.New("invalid chain graph: contains cycle")
	errGraphBranching = errors.New("invalid chain graph: nodes may have at most one parent and one child")
)

// graphNode is a JSON-serializable node in the chain graph.
type graphNode struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Bypassed bool   `json:"bypassed"`
	Params   any    `json:"params"`
}

// graphConnection is a JSON-serializable connection between two graph nodes.
type graphConnection struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// graphState is the root JSON structure for the chain graph.
type graphState struct {
	Nodes       []graphNode       `json:"nodes"`
	Connections []graphConnection `json:"connections"`
}

// compiledGraph holds the parsed nodes, a topological order, and the path
// from the input node to the output node. Only nodes on Path are processed.
type compiledGraph struct {
	Nodes     map[string]Params
	Order     []string
	Path      []string
	Connected bool
}

// parseGraph parses the JSON chain graph and performs a topological sort
// (Kahn's algorithm). Returns an empty graph for an empty string or when the
// reserved I/O nodes are missing.
//
//nolint:cyclop
func parseGraph(raw string) (*compiledGraph, error) {
	if raw == "" {
		return &compiledGraph{}, nil
	}

	var state graphState

	err := json.Unmarshal([]byte(raw), &state)
	if err != nil {
		return nil, fmt.Errorf("invalid chain graph json: %w", err)
	}

	nodes := make(map[string]Params, len(state.Nodes))
	for _, n := range state.Nodes {
		if n.ID == "" || n.Type == "" {
			continue
		}

		num, str := parseNodeParams(n.Params)
		nodes[n.ID] = Params{
			ID:       n.ID,
			Type:     n.Type,
			Bypassed: n.Bypassed,
			Num:      num,
			Str:      str,
		}
	}

	if _, ok := nodes[InputNodeID]; !ok {
		return &compiledGraph{}, nil
	}

	if _, ok := nodes[OutputNodeID]; !ok {
		return &compiledGraph{}, nil
	}

	outgoing := make(map[string][]string, len(nodes))
	indegree := make(map[string]int, len(nodes))

	for id := range nodes {
		indegree[id] = 0
	}

	for _, c := range state.Connections {
		if c.From == "" || c.To == "" || c.From == c.To {
			continue
		}

		if _, ok := nodes[c.From]; !ok {
			continue
		}

		if _, ok := nodes[c.To]; !ok {
			continue
		}

		outgoing[c.From] = append(outgoing[c.From], c.To)
		indegree[c.To]++

		if len(outgoing[c.From]) > 1 || indegree[c.To] > 1 {
			return nil, fmt.Errorf("%w: %s -> %s", errGraphBranching, c.From, c.To)
		}
	}

	queue := make([]string, 0, len(nodes))

	for id, d := range indegree {
		if d == 0 {
			queue = append(queue, id)
		}
	}

	// Unconnected nodes all start with indegree 0; keep their order stable.
	sort.Strings(queue)

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		order = append(order, id)
		for _, to := range outgoing[id] {
			indegree[to]--
			if indegree[to] == 0 {
				queue = append(queue, to)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, errGraphCycle
	}

	path, connected := walkPath(outgoing)

	return &compiledGraph{
		Nodes:     nodes,
		Order:     order,
		Path:      path,
		Connected: connected,
	}, nil
}

// walkPath follows the single outgoing edge of each node starting at the
// input. The returned path excludes the I/O nodes.
func walkPath(outgoing map[string][]string) ([]string, bool) {
	var path []string

	id := InputNodeID
	for {
		next := outgoing[id]
		if len(next) == 0 {
			return path, false
		}

		id = next[0]
		if id == OutputNodeID {
			return path, true
		}

		path = append(path, id)
	}
}

// parseNodeParams extracts numeric and string parameters from a raw JSON params value.
func parseNodeParams(raw any) (map[string]float64, map[string]string) {
	num := map[string]float64{}
	str := map[string]string{}

	params, ok := raw.(map[string]any)
	if !ok || params == nil {
		return num, str
	}

	for k, v := range params {
		switch t := v.(type) {
		case float64:
			num[k] = t
		case string:
			str[k] = t
		case bool:
			if t {
				num[k] = 1
			} else {
				num[k] = 0
			}
		}
	}

	return num, str
}

// isStructuralNodeType returns true for I/O nodes that don't need a runtime.
func isStructuralNodeType(nodeType string) bool {
	return nodeType == InputNodeID || nodeType == OutputNodeID
}
