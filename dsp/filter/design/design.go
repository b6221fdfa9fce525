package design

import (
	"math"

	"github.com/cwbudde/algo-jungle/dsp/core"
	"github.com/cwbudde/algo-jungle/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// Identity is the pass-through section. Designers return it for
// frequencies they cannot place below Nyquist.
var Identity = biquad.Coefficients{B0: 1}

// Peak designs an RBJ peaking EQ biquad with gain in dB.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	p := NewPeaking(freq, q, sampleRate)
	return p.Coefficients(gainDB)
}

// Peaking is a peaking filter whose center and bandwidth are fixed, so the
// trigonometric terms are computed once and only the gain varies. Computing
// coefficients is allocation free and suitable for the processing path.
type Peaking struct {
	cosW0 float64
	alpha float64
	valid bool
}

// NewPeaking precomputes a peaking prototype at freq Hz with quality q.
// A non-positive q falls back to 1/sqrt(2).
func NewPeaking(freq, q, sampleRate float64) Peaking {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Peaking{}
	}

	q = normalizedQ(q)

	return Peaking{
		cosW0: math.Cos(w0),
		alpha: math.Sin(w0) / (2 * q),
		valid: true,
	}
}

// Valid reports whether the center frequency lies strictly inside (0, Nyquist).
func (p Peaking) Valid() bool {
	return p.valid
}

// Coefficients returns normalized coefficients for gainDB.
// At 0 dB the result is an exact identity (see biquad.Coefficients.IsIdentity).
func (p Peaking) Coefficients(gainDB float64) biquad.Coefficients {
	if !p.valid || !core.IsFinite(gainDB) {
		return Identity
	}

	a := math.Pow(10, gainDB/40)

	b0 := 1 + p.alpha*a
	b1 := -2 * p.cosW0
	b2 := 1 - p.alpha*a
	a0 := 1 + p.alpha/a
	a1 := -2 * p.cosW0
	a2 := 1 - p.alpha/a

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || !core.IsFinite(freq) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || !core.IsFinite(q) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || !core.IsFinite(a0) {
		return Identity
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
