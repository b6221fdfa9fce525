// Package pitch provides the granular delay-line pitch shifter ("Jungle").
//
// The shifter reads the input through delay lines whose delay time follows
// a looping sawtooth ramp. A steadily growing delay plays the signal back
// slower (lower pitch), a shrinking one faster (higher pitch). Two voices,
// staggered by half a period, cross-fade with square-root envelopes so one
// voice covers the other's ramp reset.
//
// Pitch is controlled through a single offset multiplier, see
// [SemitonesToPitchOffset]: positive offsets select the shift-up ramps,
// zero or negative offsets the shift-down ramps, and the magnitude scales
// the modulation depth.
package pitch
