package core

import (
	"math"
	"testing"
)

func TestSecondsToSamples(t *testing.T) {
	tests := []struct {
		seconds float64
		rate    float64
		want    int
	}{
		{seconds: 0.1, rate: 44100, want: 4410},
		{seconds: 0.05, rate: 48000, want: 2400},
		{seconds: 0.1, rate: 22050.5, want: 2205},
		{seconds: 0, rate: 48000, want: 0},
		{seconds: 1, rate: 0, want: 0},
	}

	for _, tt := range tests {
		if got := SecondsToSamples(tt.seconds, tt.rate); got != tt.want {
			t.Fatalf("SecondsToSamples(%v, %v) = %d, want %d", tt.seconds, tt.rate, got, tt.want)
		}
	}
}

func TestSmoothingCoefficientTimeConstant(t *testing.T) {
	const rate = 48000.0

	coef := SmoothingCoefficient(0.01, rate)

	// After tau seconds a step has covered 1 - 1/e of the distance.
	v := 0.0
	for range SecondsToSamples(0.01, rate) {
		v += (1 - v) * coef
	}

	if want := 1 - 1/math.E; math.Abs(v-want) > 1e-3 {
		t.Fatalf("value after tau = %v, want %v", v, want)
	}
}

func TestSmoothingCoefficientDisabled(t *testing.T) {
	if got := SmoothingCoefficient(0, 48000); got != 1 {
		t.Fatalf("SmoothingCoefficient(0) = %v, want 1", got)
	}
}
