// Package biquad provides the second-order IIR runtime used by the
// equalizer.
//
// A [Section] implements Direct Form II Transposed processing for one
// section defined by [Coefficients]. A [Chain] runs sections in series, in
// the order given. Coefficient design lives in dsp/filter/design.
package biquad
