package pitch

import "math"

// Pitch control range in semitones.
const (
	MinSemitones = -12.0
	MaxSemitones = 12.0
)

// SemitonesToPitchOffset converts a semitone shift to the shifter's offset
// multiplier. The mapping is asymmetric: +12 gives 2 and -12 gives -1, and
// zero maps to exactly 0.
func SemitonesToPitchOffset(semitones float64) float64 {
	switch {
	case semitones == 0 || math.IsNaN(semitones):
		return 0
	case semitones > 0:
		return (math.Pow(2, semitones/12) - 1) * 2
	default:
		return -1 + (math.Pow(2, (12+semitones)/12) - 1)
	}
}

// OffsetToPlaybackRatio returns the frequency ratio the shifter produces
// for mult with the default modulation timing. The delay swing
// 0.5*DelayTime*|mult| is traversed once per ActiveTime.
func OffsetToPlaybackRatio(mult float64) float64 {
	slope := 0.5 * DelayTime * math.Abs(mult) / ActiveTime
	if mult > 0 {
		return 1 + slope
	}

	return 1 - slope
}
