package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-jungle/dsp/core"
)

// Goertzel evaluates a single DFT term over every sample processed since
// the last Reset. Per-band tone levels in render reports are measured with it.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel creates a new Goertzel analyzer for the target frequency.
//
// frequency must be between 0 and sampleRate/2.
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}

	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	g := &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
	}
	g.updateCoeff()

	return g, nil
}

func (g *Goertzel) updateCoeff() {
	g.coeff = 2 * math.Cos(2*math.Pi*g.frequency/g.sampleRate)
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
}

// ProcessSample updates the internal state with a single input sample.
func (g *Goertzel) ProcessSample(input float64) {
	s := input + g.coeff*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
}

// Power returns the squared magnitude of the frequency component.
//
// This is typically called after processing a block of samples.
// The result is equivalent to |X[k]|^2 from a DFT of the same block length.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns the magnitude of the frequency component.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// PowerDB returns the power in decibels (dB) with a safe floor at -300 dB.
func (g *Goertzel) PowerDB() float64 {
	p := g.Power()
	if p <= 1e-30 {
		return -300
	}

	return 10 * math.Log10(p)
}

// Frequency returns the current target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// SampleRate returns the current sample rate.
func (g *Goertzel) SampleRate() float64 { return g.sampleRate }

// LevelDB returns the amplitude of a sinusoid at frequency within input, in
// dB relative to full scale (a unit-amplitude sine reads 0 dB).
func LevelDB(input []float64, frequency, sampleRate float64) (float64, error) {
	if len(input) == 0 {
		return math.Inf(-1), nil
	}

	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(input)

	return core.LinearToDB(2 * g.Magnitude() / float64(len(input))), nil
}

// LevelsDB measures LevelDB at each frequency. Frequencies at or above
// Nyquist report -Inf.
func LevelsDB(input []float64, frequencies []float64, sampleRate float64) ([]float64, error) {
	out := make([]float64, len(frequencies))
	for i, f := range frequencies {
		if f >= sampleRate/2 {
			out[i] = math.Inf(-1)
			continue
		}

		level, err := LevelDB(input, f, sampleRate)
		if err != nil {
			return nil, err
		}

		out[i] = level
	}

	return out, nil
}
