package core

import "math"

// SecondsToSamples converts a duration to the nearest whole number of samples.
func SecondsToSamples(seconds, sampleRate float64) int {
	if seconds <= 0 || sampleRate <= 0 {
		return 0
	}

	return int(math.Round(seconds * sampleRate))
}

// SmoothingCoefficient returns the per-sample weight of a one-pole smoother
// with time constant tau seconds: after tau the remaining distance to the
// target is 1/e. A non-positive tau yields 1 (jump immediately).
func SmoothingCoefficient(tau, sampleRate float64) float64 {
	if tau <= 0 || sampleRate <= 0 {
		return 1
	}

	coef := 1 - math.Exp(-1/(tau*sampleRate))

	return Clamp(coef, 0, 1)
}
