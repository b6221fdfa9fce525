package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-jungle/internal/testutil"
)

func TestNewAnalyzerValidation(t *testing.T) {
	tests := []struct {
		name string
		size int
		rate float64
	}{
		{name: "too small", size: 32, rate: 48000},
		{name: "not power of two", size: 1000, rate: 48000},
		{name: "zero rate", size: 1024, rate: 0},
		{name: "nan rate", size: 1024, rate: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAnalyzer(tt.size, tt.rate); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPeakFrequency(t *testing.T) {
	const rate = 44100.0

	for _, freq := range []float64{110, 440, 1234.5, 8000} {
		x := testutil.DeterministicSine(freq, rate, 0.7, 16384)

		got, err := PeakFrequency(x, rate)
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(got-freq) > rate/16384 {
			t.Fatalf("PeakFrequency(%v Hz sine) = %v", freq, got)
		}
	}
}

func TestPeakFrequencyShortInput(t *testing.T) {
	if _, err := PeakFrequency(make([]float64, 10), 48000); !errors.Is(err, ErrShortInput) {
		t.Fatalf("err = %v, want ErrShortInput", err)
	}

	a, err := NewAnalyzer(1024, 48000)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.Magnitude(make([]float64, 512)); !errors.Is(err, ErrShortInput) {
		t.Fatalf("err = %v, want ErrShortInput", err)
	}
}

func TestMagnitudeBinCount(t *testing.T) {
	a, err := NewAnalyzer(256, 48000)
	if err != nil {
		t.Fatal(err)
	}

	mag, err := a.Magnitude(testutil.Impulse(256, 128))
	if err != nil {
		t.Fatal(err)
	}

	if len(mag) != 129 {
		t.Fatalf("len = %d, want 129", len(mag))
	}

	testutil.RequireFinite(t, mag)
}
