package effectchain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-jungle/dsp/core"
	"github.com/cwbudde/algo-jungle/dsp/effects/pitch"
	"github.com/cwbudde/algo-jungle/dsp/filter/bank"
)

// EqualizerRuntime runs a 10-band equalizer node. Parameters "band0" to
// "band9" set band gains in dB; params given at load time set the initial
// gains.
type EqualizerRuntime struct {
	eq *bank.Equalizer
}

// Configure builds the equalizer for the context sample rate.
func (r *EqualizerRuntime) Configure(ctx Context, p Params) error {
	eq, err := bank.NewEqualizer(ctx.SampleRate,
		bank.WithQ(p.GetNum("q", bank.DefaultQ)),
		bank.WithSmoothingTime(ctx.SmoothingTime),
	)
	if err != nil {
		return err
	}

	for i := range bank.NumBands {
		if _, err := eq.SetBandGain(i, p.GetNum(bandParam(i), 0)); err != nil {
			return err
		}
	}

	eq.Reset()
	r.eq = eq

	return nil
}

// SetParameter sets "bandN" to a gain in dB.
func (r *EqualizerRuntime) SetParameter(name string, value float64) error {
	idx, ok := parseBandParam(name)
	if !ok {
		return fmt.Errorf("eq10: unknown parameter %q", name)
	}

	_, err := r.eq.SetBandGain(idx, value)

	return err
}

// Equalizer exposes the underlying equalizer.
func (r *EqualizerRuntime) Equalizer() *bank.Equalizer {
	return r.eq
}

// Process filters block in place.
func (r *EqualizerRuntime) Process(block []float64) {
	r.eq.ProcessBlock(block)
}

func bandParam(i int) string {
	return "band" + strconv.Itoa(i)
}

func parseBandParam(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "band")
	if !ok {
		return 0, false
	}

	idx, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}

	return idx, true
}

// JungleRuntime runs a granular pitch-shifter node. Parameter "offset" is
// the pitch offset multiplier; "maxDelay" (seconds) sizes the delay lines.
type JungleRuntime struct {
	fx *pitch.Jungle
}

// Configure builds the shifter for the context sample rate and block size.
func (r *JungleRuntime) Configure(ctx Context, p Params) error {
	fx, err := pitch.NewJungle(ctx.SampleRate,
		pitch.WithBlockSize(ctx.BlockSize),
		pitch.WithSmoothingTime(ctx.SmoothingTime),
		pitch.WithMaxDelay(p.GetNum("maxDelay", pitch.DefaultMaxDelay)),
	)
	if err != nil {
		return err
	}

	if offset := p.GetNum("offset", 0); offset != 0 {
		fx.SetPitchOffset(offset)
		fx.Reset()
	}

	r.fx = fx

	return nil
}

// SetParameter sets "offset".
func (r *JungleRuntime) SetParameter(name string, value float64) error {
	if name != "offset" {
		return fmt.Errorf("jungle: unknown parameter %q", name)
	}

	if !core.IsFinite(value) {
		return fmt.Errorf("jungle: offset must be finite: %f", value)
	}

	r.fx.SetPitchOffset(value)

	return nil
}

// Jungle exposes the underlying shifter.
func (r *JungleRuntime) Jungle() *pitch.Jungle {
	return r.fx
}

// Process shifts block in place.
func (r *JungleRuntime) Process(block []float64) {
	r.fx.ProcessBlock(block)
}

// Release drops the shifter's delay lines.
func (r *JungleRuntime) Release() {
	if r.fx != nil {
		r.fx.Release()
	}
}
