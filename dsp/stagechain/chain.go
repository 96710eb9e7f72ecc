package stagechain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStage is returned when a node references an unregistered stage type.
	ErrUnknownStage = errors.New("unknown stage type")

	// ErrUnknownNode is returned by node-addressed operations for IDs without a runtime.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNoState is returned when a runtime does not support saving or loading state.
	ErrNoState = errors.New("node has no persistent state")
)

type nodeRuntime struct {
	stageType string
	runtime   Runtime
}

// Chain owns a linear pipeline of stage runtimes. It is independent of any
// application engine.
type Chain struct {
	ctx      Context
	registry *Registry

	graph *compiledGraph
	nodes map[string]*nodeRuntime
}

// New creates a Chain with the given context and registry.
func New(ctx Context, registry *Registry) *Chain {
	return &Chain{
		ctx:      ctx,
		registry: registry,
		nodes:    make(map[string]*nodeRuntime),
	}
}

// SetContext updates the chain context. When the channel count changes every
// runtime implementing ChannelCountListener is notified.
func (c *Chain) SetContext(ctx Context) {
	changed := ctx.NumChannels != c.ctx.NumChannels
	c.ctx = ctx

	if !changed {
		return
	}

	for _, rt := range c.nodes {
		if l, ok := rt.runtime.(ChannelCountListener); ok {
			l.UpdateSettings(ctx.NumChannels)
		}
	}
}

// Context returns the current chain context.
func (c *Chain) Context() Context {
	return c.ctx
}

// HasGraph returns true if the chain has a loaded graph whose input reaches its output.
func (c *Chain) HasGraph() bool {
	return c.graph != nil && c.graph.Connected
}

// LoadGraph parses a JSON graph string, compiles the topology, and
// synchronizes node runtimes. An empty string clears the graph.
func (c *Chain) LoadGraph(jsonGraph string) error {
	graph, err := parseGraph(jsonGraph)
	if err != nil {
		return fmt.Errorf("stagechain: %w", err)
	}

	err = c.syncNodes(graph)
	if err != nil {
		return err
	}

	c.graph = graph

	return nil
}

// Reset clears all node runtimes and the graph.
func (c *Chain) Reset() {
	c.graph = nil
	c.nodes = make(map[string]*nodeRuntime)
}

// NodeRuntime returns the Runtime for the given node ID, or nil.
func (c *Chain) NodeRuntime(nodeID string) Runtime {
	rt := c.nodes[nodeID]
	if rt == nil {
		return nil
	}

	return rt.runtime
}

// syncNodes synchronises runtime instances with the compiled graph. Nodes that
// are no longer present are removed; new or type-changed nodes are (re)created.
// Every node is configured with its current params.
func (c *Chain) syncNodes(graph *compiledGraph) error {
	seen := map[string]struct{}{}

	for _, node := range graph.Nodes {
		if isStructuralNodeType(node.Type) {
			continue
		}

		seen[node.ID] = struct{}{}

		rt := c.nodes[node.ID]
		if rt == nil || rt.stageType != node.Type {
			runtime, err := c.newRuntime(node.Type)
			if err != nil {
				return fmt.Errorf("stagechain: node %q: %w", node.ID, err)
			}

			rt = &nodeRuntime{stageType: node.Type, runtime: runtime}
			c.nodes[node.ID] = rt
		}

		err := rt.runtime.Configure(c.ctx, node)
		if err != nil {
			return fmt.Errorf("stagechain: configure node %q (%s): %w", node.ID, node.Type, err)
		}
	}

	for id := range c.nodes {
		if _, ok := seen[id]; !ok {
			delete(c.nodes, id)
		}
	}

	return nil
}

func (c *Chain) newRuntime(stageType string) (Runtime, error) {
	factory := c.registry.Lookup(stageType)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStage, stageType)
	}

	rt, err := factory(c.ctx)
	if err != nil {
		return nil, err
	}

	if rt == nil {
		return nil, fmt.Errorf("factory for %s returned nil runtime", stageType)
	}

	return rt, nil
}
