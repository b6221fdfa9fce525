package pitch

import (
	"math"
	"testing"
)

func TestSemitonesToPitchOffsetExact(t *testing.T) {
	tests := []struct {
		semitones float64
		want      float64
	}{
		{semitones: 0, want: 0},
		{semitones: 12, want: 2},
		{semitones: -12, want: -1},
	}

	for _, tt := range tests {
		if got := SemitonesToPitchOffset(tt.semitones); got != tt.want {
			t.Fatalf("SemitonesToPitchOffset(%v) = %v, want exactly %v", tt.semitones, got, tt.want)
		}
	}
}

func TestSemitonesToPitchOffsetSign(t *testing.T) {
	for s := -12.0; s <= 12; s++ {
		got := SemitonesToPitchOffset(s)

		switch {
		case s > 0 && got <= 0:
			t.Fatalf("s=%v: offset %v should be positive", s, got)
		case s < 0 && (got >= 0 || got < -1):
			t.Fatalf("s=%v: offset %v should be in [-1, 0)", s, got)
		}
	}
}

func TestOffsetToPlaybackRatioIsEqualTempered(t *testing.T) {
	for s := -12.0; s <= 12; s++ {
		got := OffsetToPlaybackRatio(SemitonesToPitchOffset(s))
		want := math.Pow(2, s/12)

		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("s=%v: ratio %v, want %v", s, got, want)
		}
	}
}
