package effectchain

import (
	"testing"

	"github.com/cwbudde/algo-jungle/dsp/param"
)

// addRuntime adds a constant to every sample.
type addRuntime struct {
	value float64
}

func (a *addRuntime) Configure(_ Context, params Params) error {
	a.value = params.GetNum("value", 0)
	return nil
}

func (a *addRuntime) Process(block []float64) {
	for i := range block {
		block[i] += a.value
	}
}

// countingRuntime records calls for order and release assertions.
type countingRuntime struct {
	processCalls int
	released     bool
	lastLen      int
}

func (c *countingRuntime) Configure(Context, Params) error { return nil }

func (c *countingRuntime) Process(block []float64) {
	c.processCalls++
	c.lastLen = len(block)
}

func (c *countingRuntime) Release() { c.released = true }

func testRegistry() *Registry {
	r := DefaultRegistry()
	r.MustRegister("add", func(Context) (Runtime, error) { return &addRuntime{}, nil })
	r.MustRegister("count", func(Context) (Runtime, error) { return &countingRuntime{}, nil })

	return r
}

func testContext(selectors map[string]*param.Selector) Context {
	return Context{SampleRate: 48000, BlockSize: 64, SmoothingTime: 0.01, Selectors: selectors}
}

func withIO(nodes ...NodeSpec) GraphSpec {
	all := []NodeSpec{{ID: InputNodeID}, {ID: OutputNodeID}}
	return GraphSpec{Nodes: append(all, nodes...)}
}

func mustLoad(t testing.TB, c *Chain, spec GraphSpec) {
	t.Helper()

	if err := c.Load(spec); err != nil {
		t.Fatalf("Load: %v", err)
	}
}
