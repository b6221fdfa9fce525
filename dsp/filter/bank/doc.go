// Package bank provides the fixed 10-band graphic equalizer.
//
// An [Equalizer] is a serial cascade of RBJ peaking sections at
// 32, 64, 125, 250, 500, 1000, 2000, 4000, 8000 and 16000 Hz, processed in
// ascending order with Q = 2. Band gains are clamped to [-16, +16] dB.
//
// Gains may be set from any goroutine while ProcessBlock runs on the audio
// goroutine: targets are exchanged through atomics and approached
// exponentially, once per processed block.
//
// Basic usage:
//
//	eq, _ := bank.NewEqualizer(48000)
//	eq.SetBandGain(5, 6) // +6 dB at 1 kHz
//	eq.ProcessBlock(buf)
package bank
