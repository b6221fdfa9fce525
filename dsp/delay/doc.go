// Package delay provides the circular delay line read by the modulated
// voices of the pitch shifter.
package delay
