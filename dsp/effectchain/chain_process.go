package effectchain

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-jungle/dsp/core"
)

// Latch captures every selector of the context for the next pass.
func (c *Chain) Latch() {
	for _, s := range c.selectors {
		s.Latch()
	}
}

// Process latches the selectors and applies the graph to block in place.
// Returns false if no graph is loaded.
func (c *Chain) Process(block []float64) bool {
	if !c.Loaded() {
		return false
	}

	c.Latch()

	return c.ProcessLatched(block)
}

// ProcessLatched applies the graph using the selector positions captured
// by the last Latch. Callers running several chains on shared selectors
// latch once and call ProcessLatched on each. It does not allocate.
func (c *Chain) ProcessLatched(block []float64) bool {
	if !c.Loaded() {
		return false
	}

	size := c.ctx.BlockSize
	for len(block) > size {
		c.processChunk(block[:size])
		block = block[size:]
	}

	if len(block) > 0 {
		c.processChunk(block)
	}

	return true
}

func (c *Chain) processChunk(chunk []float64) {
	n := len(chunk)

	for i := range c.nodes {
		nd := &c.nodes[i]
		if i == c.input {
			nd.view = chunk
			continue
		}

		dst := nd.buf[:n]
		c.mixParentsInto(nd.parents, dst)

		if nd.runtime != nil && !nd.bypassed {
			nd.runtime.Process(dst)
		}

		nd.view = dst
	}

	copy(chunk, c.nodes[c.output].view)
}

// mixParentsInto writes the plain sum of the parents' outputs into dst.
func (c *Chain) mixParentsInto(parents []int, dst []float64) {
	switch len(parents) {
	case 0:
		core.Zero(dst)
	case 1:
		copy(dst, c.nodes[parents[0]].view)
	default:
		copy(dst, c.nodes[parents[0]].view)

		for _, p := range parents[1:] {
			vecmath.AddBlockInPlace(dst, c.nodes[p].view)
		}
	}
}
