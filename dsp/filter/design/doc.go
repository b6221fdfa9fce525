// Package design provides the peaking-filter coefficient designer used by
// the graphic equalizer.
//
// Coefficients follow the RBJ Audio EQ Cookbook "peaking" section, the same
// formula used by Web Audio BiquadFilterNode, and are consumed by
// dsp/filter/biquad for runtime processing.
package design
