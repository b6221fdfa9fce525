package host

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-jungle/dsp/core"
	"github.com/cwbudde/algo-jungle/internal/engine"
)

var errEmptyClip = errors.New("host: empty clip")

// Clip is multi-channel audio held in memory with a playhead. It implements
// engine.Media. The playback rate is reported but not applied by Read.
type Clip struct {
	id   string
	rate float64
	data [][]float64

	mu     sync.Mutex
	pos    int
	paused bool
	volume float64
	speed  float64
}

var _ engine.Media = (*Clip)(nil)

// NewClip wraps data, one slice per channel, all of equal length.
func NewClip(id string, sampleRate float64, data [][]float64) (*Clip, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("host: sample rate must be > 0: %f", sampleRate)
	}

	if len(data) == 0 {
		return nil, errors.New("host: clip needs at least one channel")
	}

	for ch := range data {
		if len(data[ch]) != len(data[0]) {
			return nil, fmt.Errorf("host: channel %d has %d frames, want %d", ch, len(data[ch]), len(data[0]))
		}
	}

	return &Clip{id: id, rate: sampleRate, data: data, paused: true, volume: 1, speed: 1}, nil
}

// ID returns the clip identifier.
func (c *Clip) ID() string { return c.id }

// SampleRate returns the clip sample rate in Hz.
func (c *Clip) SampleRate() float64 { return c.rate }

// Channels returns the channel count.
func (c *Clip) Channels() int { return len(c.data) }

// Frames returns the clip length in samples per channel.
func (c *Clip) Frames() int { return len(c.data[0]) }

// Data returns the underlying channel slices.
func (c *Clip) Data() [][]float64 { return c.data }

// CurrentTime returns the playhead position in seconds.
func (c *Clip) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return float64(c.pos) / c.rate
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	return float64(c.Frames()) / c.rate
}

// Volume returns the output volume in [0, 1].
func (c *Clip) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.volume
}

// PlaybackRate returns the playback rate.
func (c *Clip) PlaybackRate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.speed
}

// Paused reports whether Read is stopped.
func (c *Clip) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.paused
}

// Play resumes playback. At the end of the clip it restarts from the
// beginning.
func (c *Clip) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Frames() == 0 {
		return errEmptyClip
	}

	if c.pos >= c.Frames() {
		c.pos = 0
	}

	c.paused = false

	return nil
}

// Pause stops playback.
func (c *Clip) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

// Seek moves the playhead to seconds, clamped to the clip.
func (c *Clip) Seek(seconds float64) {
	pos := int(math.Round(core.Clamp(seconds, 0, c.Duration()) * c.rate))

	c.mu.Lock()
	c.pos = min(pos, c.Frames())
	c.mu.Unlock()
}

// SetVolume sets the output volume.
func (c *Clip) SetVolume(v float64) {
	c.mu.Lock()
	c.volume = v
	c.mu.Unlock()
}

// SetPlaybackRate sets the reported playback rate.
func (c *Clip) SetPlaybackRate(r float64) {
	c.mu.Lock()
	c.speed = r
	c.mu.Unlock()
}

// Read copies frames from the playhead into dst, one slice per channel, and
// advances it. Extra dst channels repeat the last clip channel. It returns
// the number of frames read; 0 when paused or at the end, where the clip
// pauses itself.
func (c *Clip) Read(dst [][]float64) int {
	if len(dst) == 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused {
		return 0
	}

	n := min(len(dst[0]), c.Frames()-c.pos)
	if n <= 0 {
		c.paused = true
		return 0
	}

	for ch := range dst {
		src := c.data[min(ch, len(c.data)-1)]
		out := dst[ch][:n]

		if c.volume == 1 {
			copy(out, src[c.pos:c.pos+n])
		} else {
			vecmath.ScaleBlock(out, src[c.pos:c.pos+n], c.volume)
		}
	}

	c.pos += n

	return n
}
