package param

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-jungle/dsp/core"
)

// Smoothed is a one-pole smoothed parameter.
//
// SetTarget is safe to call concurrently with the processing methods. The
// current value is owned by the processing goroutine.
type Smoothed struct {
	target  atomic.Uint64
	current float64
	coef    float64
}

// NewSmoothed returns a parameter resting at initial with time constant tau
// seconds at the given sample rate.
func NewSmoothed(initial, tau, sampleRate float64) *Smoothed {
	s := &Smoothed{
		current: initial,
		coef:    core.SmoothingCoefficient(tau, sampleRate),
	}
	s.target.Store(math.Float64bits(initial))

	return s
}

// SetTarget sets the value approached from the next processed sample on.
func (s *Smoothed) SetTarget(v float64) {
	s.target.Store(math.Float64bits(v))
}

// Target returns the value currently approached.
func (s *Smoothed) Target() float64 {
	return math.Float64frombits(s.target.Load())
}

// Value returns the current smoothed value.
func (s *Smoothed) Value() float64 {
	return s.current
}

// Settled reports whether the current value equals the target.
func (s *Smoothed) Settled() bool {
	return s.current == s.Target()
}

// Next advances one sample and returns the new value.
func (s *Smoothed) Next() float64 {
	target := s.Target()
	if s.current == target {
		return target
	}

	s.current += (target - s.current) * s.coef
	if math.Abs(target-s.current) < 1e-12 {
		s.current = target
	}

	return s.current
}

// Fill writes the next len(dst) values into dst.
func (s *Smoothed) Fill(dst []float64) {
	target := s.Target()
	if s.current == target {
		for i := range dst {
			dst[i] = target
		}

		return
	}

	for i := range dst {
		dst[i] = s.Next()
	}
}

// Advance moves n samples ahead and returns the value reached, using the
// closed form of the one-pole recursion.
func (s *Smoothed) Advance(n int) float64 {
	target := s.Target()
	if n <= 0 || s.current == target {
		return s.current
	}

	remain := math.Pow(1-s.coef, float64(n))
	s.current = target + (s.current-target)*remain
	if math.Abs(target-s.current) < 1e-12 {
		s.current = target
	}

	return s.current
}

// Settle jumps the current value to the target.
func (s *Smoothed) Settle() {
	s.current = s.Target()
}
