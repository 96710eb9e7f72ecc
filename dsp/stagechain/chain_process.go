package stagechain

import (
	"fmt"
	"io"
)

// Process runs every node between input and output over block in place.
// Bypassed nodes are skipped. Returns false if the chain has no connected graph.
func (c *Chain) Process(block [][]float32) bool {
	g := c.graph
	if g == nil || !g.Connected {
		return false
	}

	for _, id := range g.Path {
		if g.Nodes[id].Bypassed {
			continue
		}

		rt := c.nodes[id]
		if rt == nil {
			continue
		}

		rt.runtime.Process(block)
	}

	return true
}

// SaveNodeState asks the runtime of nodeID to write its persistent state to w.
func (c *Chain) SaveNodeState(nodeID string, w io.Writer) error {
	rt := c.nodes[nodeID]
	if rt == nil {
		return fmt.Errorf("stagechain: %w: %s", ErrUnknownNode, nodeID)
	}

	saver, ok := rt.runtime.(StateSaver)
	if !ok {
		return fmt.Errorf("stagechain: %w: %s", ErrNoState, nodeID)
	}

	err := saver.SaveState(w)
	if err != nil {
		return fmt.Errorf("stagechain: save node %q: %w", nodeID, err)
	}

	return nil
}

// LoadNodeState asks the runtime of nodeID to restore its state from r.
func (c *Chain) LoadNodeState(nodeID string, r io.Reader) error {
	rt := c.nodes[nodeID]
	if rt == nil {
		return fmt.Errorf("stagechain: %w: %s", ErrUnknownNode, nodeID)
	}

	loader, ok := rt.runtime.(StateLoader)
	if !ok {
		return fmt.Errorf("stagechain: %w: %s", ErrNoState, nodeID)
	}

	err := loader.LoadState(r)
	if err != nil {
		return fmt.Errorf("stagechain: load node %q: %w", nodeID, err)
	}

	return nil
}
