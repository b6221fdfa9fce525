package biquad

import (
	"math"
	"math/cmplx"
)

// Response returns the complex frequency response H(e^jw) of the section at
// freqHz for sampleRate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// MagnitudeSquared returns |H(f)|^2. It is evaluated from the complex
// response, which stays accurate for centers far below Nyquist.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	h := c.Response(freqHz, sampleRate)
	return real(h)*real(h) + imag(h)*imag(h)
}

// MagnitudeDB returns 20*log10|H(f)|.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// Response returns the cascade response, the product of the section
// responses.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascade magnitude response in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}
