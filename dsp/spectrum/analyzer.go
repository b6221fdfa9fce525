package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-jungle/dsp/core"
)

// MinSize is the smallest FFT size accepted by NewAnalyzer.
const MinSize = 64

// ErrShortInput is returned when a signal is shorter than the analysis size.
var ErrShortInput = errors.New("spectrum: input shorter than analysis size")

// Analyzer computes Hann-windowed magnitude spectra of a fixed size.
// It reuses its buffers and is not safe for concurrent use.
type Analyzer struct {
	size       int
	sampleRate float64

	plan   *algofft.Plan[complex128]
	window []float64

	frame []float64
	in    []complex128
	out   []complex128
	re    []float64
	im    []float64
	mag   []float64
}

// NewAnalyzer returns an analyzer for power-of-two size at sampleRate.
func NewAnalyzer(size int, sampleRate float64) (*Analyzer, error) {
	if size < MinSize || size&(size-1) != 0 {
		return nil, fmt.Errorf("spectrum: size must be a power of two >= %d: %d", MinSize, size)
	}

	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("spectrum: sample rate must be > 0 and finite: %f", sampleRate)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	window := make([]float64, size)
	for i := range window {
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size-1))
	}

	half := size/2 + 1

	return &Analyzer{
		size:       size,
		sampleRate: sampleRate,
		plan:       plan,
		window:     window,
		frame:      make([]float64, size),
		in:         make([]complex128, size),
		out:        make([]complex128, size),
		re:         make([]float64, half),
		im:         make([]float64, half),
		mag:        make([]float64, half),
	}, nil
}

// Size returns the FFT size.
func (a *Analyzer) Size() int { return a.size }

// BinHz returns the frequency spacing of the spectrum bins.
func (a *Analyzer) BinHz() float64 { return a.sampleRate / float64(a.size) }

// Magnitude returns |X[k]| for bins 0..size/2 of the windowed first Size()
// samples of x. The returned slice is owned by the analyzer and is
// overwritten by the next call.
func (a *Analyzer) Magnitude(x []float64) ([]float64, error) {
	if len(x) < a.size {
		return nil, fmt.Errorf("%w: %d < %d", ErrShortInput, len(x), a.size)
	}

	vecmath.MulBlock(a.frame, x[:a.size], a.window)

	for i, v := range a.frame {
		a.in[i] = complex(v, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	for k := range a.re {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}

	vecmath.Magnitude(a.mag, a.re, a.im)

	return a.mag, nil
}

// PeakFrequency returns the frequency of the strongest non-DC bin of x,
// refined by parabolic interpolation over the neighboring bins.
func (a *Analyzer) PeakFrequency(x []float64) (float64, error) {
	mag, err := a.Magnitude(x)
	if err != nil {
		return 0, err
	}

	best := 1
	for k := 2; k < len(mag)-1; k++ {
		if mag[k] > mag[best] {
			best = k
		}
	}

	l, c, r := mag[best-1], mag[best], mag[best+1]
	offset := 0.0

	if den := l - 2*c + r; den != 0 {
		offset = core.Clamp(0.5*(l-r)/den, -0.5, 0.5)
	}

	return (float64(best) + offset) * a.BinHz(), nil
}

// PeakFrequency analyzes the largest power-of-two prefix of x.
func PeakFrequency(x []float64, sampleRate float64) (float64, error) {
	size := MinSize
	if len(x) < size {
		return 0, fmt.Errorf("%w: %d < %d", ErrShortInput, len(x), size)
	}

	for size*2 <= len(x) {
		size *= 2
	}

	a, err := NewAnalyzer(size, sampleRate)
	if err != nil {
		return 0, err
	}

	return a.PeakFrequency(x)
}
