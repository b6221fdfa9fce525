package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-jungle/dsp/core"
	"github.com/cwbudde/algo-jungle/dsp/interp"
)

// Line is a circular delay line.
//
// A delay of 0 addresses the most recently written sample, so a line that
// is written and then read at delay 0 passes its input through unchanged.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line holding size samples.
func New(size int) (*Line, error) {
	if size < 4 {
		return nil, fmt.Errorf("delay size must be >= 4: %d", size)
	}

	return &Line{buffer: make([]float64, size)}, nil
}

// NewSeconds returns a line able to delay by at least maxSeconds at sampleRate.
func NewSeconds(maxSeconds, sampleRate float64) (*Line, error) {
	if maxSeconds <= 0 || !core.IsFinite(maxSeconds) {
		return nil, fmt.Errorf("delay time must be > 0 and finite: %f", maxSeconds)
	}

	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("delay sample rate must be > 0 and finite: %f", sampleRate)
	}

	return New(int(math.Ceil(maxSeconds*sampleRate)) + 4)
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// MaxDelay returns the largest fractional delay in samples that ReadFractional honors.
func (d *Line) MaxDelay() float64 {
	return float64(len(d.buffer) - 3)
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample

	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}

	idx := (d.writePos - 1 - delay) % size
	if idx < 0 {
		idx += size
	}

	return d.buffer[idx]
}

// ReadFractional reads with cubic Hermite interpolation.
// The delay is clamped to [0, MaxDelay].
func (d *Line) ReadFractional(delay float64) float64 {
	if len(d.buffer) == 0 {
		return 0
	}

	delay = core.Clamp(delay, 0, d.MaxDelay())

	p := int(delay)
	t := delay - float64(p)

	if t == 0 {
		return d.Read(p)
	}

	xm1 := d.Read(max(0, p-1))
	x0 := d.Read(p)
	x1 := d.Read(p + 1)
	x2 := d.Read(p + 2)

	return interp.Hermite4(t, xm1, x0, x1, x2)
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}
