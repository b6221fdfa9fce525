package effectchain

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-jungle/dsp/core"
	"github.com/cwbudde/algo-jungle/dsp/param"
)

var (
	// ErrUnknownEffect is returned when a node references an unregistered type.
	ErrUnknownEffect = errors.New("unknown effect type")
	// ErrNoParameter is returned by SetParameter for nodes without settable parameters.
	ErrNoParameter = errors.New("effectchain: node has no settable parameters")
	// ErrLoaded is returned when Load is called on a chain that already holds a graph.
	ErrLoaded = errors.New("effectchain: topology already loaded")
)

type node struct {
	id       string
	typ      string
	bypassed bool
	runtime  Runtime

	parents []int
	buf     []float64
	view    []float64 // output of the current pass
}

// Chain owns a compiled graph: topology, node runtimes and processing
// buffers. It is independent of any application engine.
type Chain struct {
	ctx      Context
	registry *Registry

	nodes     []node // topological order
	index     map[string]int
	input     int
	output    int
	selectors []*param.Selector
}

// New creates an empty Chain with the given context and registry.
// A non-positive block size falls back to core.DefaultBlockSize.
func New(ctx Context, registry *Registry) *Chain {
	if ctx.BlockSize <= 0 {
		ctx.BlockSize = core.DefaultBlockSize
	}

	if registry == nil {
		registry = DefaultRegistry()
	}

	return &Chain{ctx: ctx, registry: registry}
}

// Context returns the chain context.
func (c *Chain) Context() Context {
	return c.ctx
}

// Loaded reports whether a graph has been compiled into the chain.
func (c *Chain) Loaded() bool {
	return c.nodes != nil
}

// LoadGraph parses a JSON graph description and loads it.
func (c *Chain) LoadGraph(jsonGraph string) error {
	spec, err := ParseGraph(jsonGraph)
	if err != nil {
		return err
	}

	return c.Load(spec)
}

// Load compiles spec, creates and configures every node runtime and
// preallocates buffers. On error the chain stays empty.
func (c *Chain) Load(spec GraphSpec) error {
	if c.Loaded() {
		return ErrLoaded
	}

	g, err := compileGraph(spec)
	if err != nil {
		return err
	}

	index := make(map[string]int, len(g.Order))
	for i, id := range g.Order {
		index[id] = i
	}

	nodes := make([]node, len(g.Order))
	for i, id := range g.Order {
		p := g.Nodes[id]

		nd := node{id: id, typ: p.Type, bypassed: p.Bypassed}
		for _, parent := range g.Incoming[id] {
			nd.parents = append(nd.parents, index[parent])
		}

		if id != InputNodeID {
			nd.buf = make([]float64, c.ctx.BlockSize)
		}

		if !isStructuralNodeType(p.Type) {
			rt, err := c.newRuntime(p)
			if err != nil {
				releaseNodes(nodes[:i])
				return err
			}

			nd.runtime = rt
		}

		nodes[i] = nd
	}

	c.nodes = nodes
	c.index = index
	c.input = index[InputNodeID]
	c.output = index[OutputNodeID]
	c.selectors = c.selectors[:0]

	for _, s := range c.ctx.Selectors {
		c.selectors = append(c.selectors, s)
	}

	return nil
}

func (c *Chain) newRuntime(p Params) (Runtime, error) {
	factory := c.registry.Lookup(p.Type)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, p.Type)
	}

	rt, err := factory(c.ctx)
	if err != nil {
		return nil, fmt.Errorf("effectchain: create node %q (%s): %w", p.ID, p.Type, err)
	}

	if err := rt.Configure(c.ctx, p); err != nil {
		return nil, fmt.Errorf("effectchain: configure node %q (%s): %w", p.ID, p.Type, err)
	}

	return rt, nil
}

// Order returns the node IDs in processing order.
func (c *Chain) Order() []string {
	out := make([]string, len(c.nodes))
	for i := range c.nodes {
		out[i] = c.nodes[i].id
	}

	return out
}

// NodeRuntime returns the Runtime for the given node ID, or nil.
func (c *Chain) NodeRuntime(nodeID string) Runtime {
	i, ok := c.index[nodeID]
	if !ok {
		return nil
	}

	return c.nodes[i].runtime
}

// SetParameter forwards a parameter change to a node runtime. It is safe
// to call while another goroutine runs Process.
func (c *Chain) SetParameter(nodeID, name string, value float64) error {
	rt := c.NodeRuntime(nodeID)
	if rt == nil {
		return fmt.Errorf("%w: %q", ErrUnknownNode, nodeID)
	}

	ps, ok := rt.(ParameterSetter)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoParameter, nodeID)
	}

	if err := ps.SetParameter(name, value); err != nil {
		return fmt.Errorf("effectchain: node %q: %w", nodeID, err)
	}

	return nil
}

// Release drops every node runtime and buffer. The chain cannot be
// processed or reloaded afterwards.
func (c *Chain) Release() {
	releaseNodes(c.nodes)
	c.nodes = nil
	c.index = nil
	c.selectors = nil
}

func releaseNodes(nodes []node) {
	for i := range nodes {
		if r, ok := nodes[i].runtime.(Releaser); ok {
			r.Release()
		}

		nodes[i].runtime = nil
		nodes[i].buf = nil
		nodes[i].view = nil
	}
}
