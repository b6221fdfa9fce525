package engine

import (
	"github.com/cwbudde/algo-jungle/dsp/effects/pitch"
	"github.com/cwbudde/algo-jungle/dsp/param"
)

const selectorWet = "wet"

// Router selects between the shifted (wet) and unshifted (dry) path. The
// switch is hard: one path has gain 1, the other 0.
type Router struct {
	wet *param.Selector
}

// NewRouter returns a router on the dry path.
func NewRouter() *Router {
	return &Router{wet: param.NewSelector(false)}
}

// OnPitchChanged routes for a pitch of semitones. Zero selects the dry path
// and leaves the shifter untouched; any other value selects the wet path and
// returns the offset multiplier to forward to the shifter with forward set.
func (r *Router) OnPitchChanged(semitones float64) (offset float64, forward bool) {
	if semitones == 0 {
		r.wet.Set(false)
		return 0, false
	}

	r.wet.Set(true)

	return pitch.SemitonesToPitchOffset(semitones), true
}

// WetGain returns 1 when the wet path is selected, else 0.
func (r *Router) WetGain() float64 {
	if r.wet.On() {
		return 1
	}

	return 0
}

// DryGain returns 1 when the dry path is selected, else 0.
func (r *Router) DryGain() float64 {
	return 1 - r.WetGain()
}

func (r *Router) selectors() map[string]*param.Selector {
	return map[string]*param.Selector{selectorWet: r.wet}
}

// latch captures the selector position for the next host block. Audio
// goroutine only.
func (r *Router) latch() {
	r.wet.Latch()
}
