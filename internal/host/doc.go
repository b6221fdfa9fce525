// Package host provides media implementations the engine attaches to: an
// in-memory Clip for offline rendering and tests, WAV file IO, and a beep
// based Player for live playback.
package host
