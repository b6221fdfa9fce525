// Package spectrum measures rendered audio: the dominant frequency of a
// signal via a windowed FFT, and tone levels at fixed frequencies via the
// Goertzel algorithm.
//
// FFTs are computed with algo-fft; window and magnitude kernels use
// algo-vecmath.
package spectrum
