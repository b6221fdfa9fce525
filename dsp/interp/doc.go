// Package interp provides [Hermite4], the 4-point cubic Hermite
// interpolator used for fractional reads from the modulated delay lines.
package interp
