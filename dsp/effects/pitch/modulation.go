package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-jungle/dsp/core"
)

// Default modulation timing in seconds.
const (
	// ActiveTime is the period of one delay ramp.
	ActiveTime = 0.1
	// FadeTime is the length of each cross-fade.
	FadeTime = 0.05
	// DelayTime is the full-scale delay swing reached at offset magnitude 2.
	DelayTime = 0.1
)

// ModulationBuffers holds the looping control shapes shared by all voices.
// The slices are built once and never mutated.
type ModulationBuffers struct {
	ShiftDown []float64
	ShiftUp   []float64
	Fade      []float64

	ActiveLen int
	FadeLen   int
}

// Len returns the loop length in samples.
func (m ModulationBuffers) Len() int {
	return len(m.Fade)
}

// NewModulationBuffers builds the ramp and fade shapes for sampleRate.
func NewModulationBuffers(sampleRate, activeTime, fadeTime float64) (ModulationBuffers, error) {
	fade, err := FadeEnvelope(sampleRate, activeTime, fadeTime)
	if err != nil {
		return ModulationBuffers{}, err
	}

	down, err := DelayRamp(sampleRate, activeTime, fadeTime, false)
	if err != nil {
		return ModulationBuffers{}, err
	}

	up, err := DelayRamp(sampleRate, activeTime, fadeTime, true)
	if err != nil {
		return ModulationBuffers{}, err
	}

	activeLen, fadeLen, _ := modulationLengths(sampleRate, activeTime, fadeTime)

	return ModulationBuffers{
		ShiftDown: down,
		ShiftUp:   up,
		Fade:      fade,
		ActiveLen: activeLen,
		FadeLen:   fadeLen,
	}, nil
}

// FadeEnvelope returns the cross-fade envelope: a square-root fade-in over
// fadeTime, unity, a square-root fade-out ending at activeTime, then zero
// padding of activeTime-2*fadeTime.
func FadeEnvelope(sampleRate, activeTime, fadeTime float64) ([]float64, error) {
	activeLen, fadeLen, err := modulationLengths(sampleRate, activeTime, fadeTime)
	if err != nil {
		return nil, err
	}

	buf := make([]float64, loopLen(activeLen, fadeLen))
	fadeOutStart := activeLen - fadeLen

	for i := range activeLen {
		switch {
		case i < fadeLen:
			buf[i] = sqrt(float64(i) / float64(fadeLen))
		case i >= fadeOutStart:
			buf[i] = sqrt(1 - float64(i-fadeOutStart)/float64(fadeLen))
		default:
			buf[i] = 1
		}
	}

	return buf, nil
}

// DelayRamp returns the normalized delay ramp over activeTime followed by
// zero padding. The shift-down ramp rises from 0 towards 1, the shift-up
// ramp falls from 1 towards 0. Both are normalized by the active length, so
// they mirror each other and the delay slope is the same in both directions
// even when the loop carries padding (activeTime > 2*fadeTime).
func DelayRamp(sampleRate, activeTime, fadeTime float64, shiftUp bool) ([]float64, error) {
	activeLen, fadeLen, err := modulationLengths(sampleRate, activeTime, fadeTime)
	if err != nil {
		return nil, err
	}

	buf := make([]float64, loopLen(activeLen, fadeLen))
	n := float64(activeLen)

	for i := range activeLen {
		if shiftUp {
			buf[i] = (n - float64(i)) / n
		} else {
			buf[i] = float64(i) / n
		}
	}

	return buf, nil
}

func modulationLengths(sampleRate, activeTime, fadeTime float64) (activeLen, fadeLen int, err error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return 0, 0, fmt.Errorf("modulation sample rate must be > 0 and finite: %f", sampleRate)
	}

	if activeTime <= 0 || !core.IsFinite(activeTime) {
		return 0, 0, fmt.Errorf("modulation active time must be > 0 and finite: %f", activeTime)
	}

	if fadeTime <= 0 || !core.IsFinite(fadeTime) {
		return 0, 0, fmt.Errorf("modulation fade time must be > 0 and finite: %f", fadeTime)
	}

	if 2*fadeTime > activeTime {
		return 0, 0, fmt.Errorf("modulation fade time %f exceeds half the active time %f", fadeTime, activeTime)
	}

	activeLen = core.SecondsToSamples(activeTime, sampleRate)
	fadeLen = core.SecondsToSamples(fadeTime, sampleRate)

	if fadeLen < 1 {
		return 0, 0, fmt.Errorf("modulation fade time %f is shorter than one sample at %f Hz", fadeTime, sampleRate)
	}

	if activeLen < 2*fadeLen {
		activeLen = 2 * fadeLen
	}

	return activeLen, fadeLen, nil
}

func loopLen(activeLen, fadeLen int) int {
	return activeLen + max(0, activeLen-2*fadeLen)
}

func sqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}

	return math.Sqrt(x)
}
