package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-jungle/dsp/core"
	"github.com/cwbudde/algo-jungle/dsp/param"
)

// gainRuntime scales by a smoothed gain. A settled unity gain leaves the
// block untouched.
type gainRuntime struct {
	gain *param.Smoothed
}

func (r *gainRuntime) Configure(ctx Context, p Params) error {
	r.gain = param.NewSmoothed(p.GetNum("gain", 1), ctx.SmoothingTime, ctx.SampleRate)
	return nil
}

func (r *gainRuntime) SetParameter(name string, value float64) error {
	if name != "gain" {
		return fmt.Errorf("gain: unknown parameter %q", name)
	}

	if !core.IsFinite(value) {
		return fmt.Errorf("gain: value must be finite: %f", value)
	}

	r.gain.SetTarget(value)

	return nil
}

// Gain returns the target gain.
func (r *gainRuntime) Gain() float64 {
	return r.gain.Target()
}

func (r *gainRuntime) Process(block []float64) {
	if r.gain.Settled() {
		g := r.gain.Value()
		if g != 1 {
			vecmath.ScaleBlock(block, block, g)
		}

		return
	}

	for i, x := range block {
		block[i] = x * r.gain.Next()
	}
}

// switchRuntime passes or silences its input according to the latched
// position of a shared selector. It never blends.
type switchRuntime struct {
	sel    *param.Selector
	invert bool
}

func (r *switchRuntime) Configure(ctx Context, p Params) error {
	name := p.GetStr("selector", "")

	sel, ok := ctx.Selectors[name]
	if !ok || sel == nil {
		return fmt.Errorf("switch: unknown selector %q", name)
	}

	r.sel = sel
	r.invert = p.GetBool("invert")

	return nil
}

// Open reports whether the switch passes signal in the current pass.
func (r *switchRuntime) Open() bool {
	return r.sel.Latched() != r.invert
}

func (r *switchRuntime) Process(block []float64) {
	if !r.Open() {
		core.Zero(block)
	}
}

// sumRuntime is the explicit mixing point; the summing itself happens when
// parents are gathered.
type sumRuntime struct{}

func (sumRuntime) Configure(Context, Params) error { return nil }
func (sumRuntime) Process([]float64)               {}
