package engine

import (
	"github.com/cwbudde/algo-jungle/dsp/core"
)

// Transport limits.
const (
	MinVolume = 0.0
	MaxVolume = 1.0
	MinSpeed  = 0.25
	MaxSpeed  = 5.0
)

// TimeUpdate is the periodic playback position report.
type TimeUpdate struct {
	CurrentTime float64 `json:"currentTime"`
	Duration    float64 `json:"duration"`
	IsPlaying   bool    `json:"isPlaying"`
}

// Play starts playback. It returns false without media or when the media
// refuses to play.
func (e *Engine) Play() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.media == nil {
		return false
	}

	if err := e.media.Play(); err != nil {
		e.cfg.Logger.Printf("engine: play: %v", err)
		return false
	}

	return true
}

// Pause pauses playback. It returns false without media.
func (e *Engine) Pause() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.media == nil {
		return false
	}

	e.media.Pause()

	return true
}

// Back moves the playhead back by seconds, not before 0, and returns the
// new position.
func (e *Engine) Back(seconds float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.media == nil {
		return 0
	}

	e.media.Seek(max(0, e.media.CurrentTime()-seconds))

	return e.media.CurrentTime()
}

// SetCurrentTime seeks to t clamped to [0, duration] and returns the new
// position.
func (e *Engine) SetCurrentTime(t float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.media == nil {
		return 0
	}

	e.media.Seek(core.Clamp(t, 0, e.durationLocked()))

	return e.media.CurrentTime()
}

// SetVolume clamps v to [0, 1], applies it and returns the effective value.
func (e *Engine) SetVolume(v float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.media == nil {
		return 1
	}

	e.media.SetVolume(core.Clamp(v, MinVolume, MaxVolume))

	return e.media.Volume()
}

// SetSpeed clamps r to [0.25, 5], applies it and returns the effective value.
func (e *Engine) SetSpeed(r float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.media == nil {
		return 1
	}

	e.media.SetPlaybackRate(core.Clamp(r, MinSpeed, MaxSpeed))

	return e.media.PlaybackRate()
}

// TimeUpdate reports the playback position.
func (e *Engine) TimeUpdate() TimeUpdate {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.media == nil {
		return TimeUpdate{}
	}

	return TimeUpdate{
		CurrentTime: e.media.CurrentTime(),
		Duration:    e.durationLocked(),
		IsPlaying:   !e.media.Paused(),
	}
}

// SetLoopEnabled turns looping on or off. The first enable with media sets
// the loop end to the media duration.
func (e *Engine) SetLoopEnabled(enabled bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.loopEnabled = enabled
	if enabled && e.media != nil && e.loopEnd == 0 {
		e.loopEnd = e.durationLocked()
	}

	return e.loopEnabled
}

// SetLoopStart clamps t to [0, loop end] and stores it. The loop end falls
// back to the duration when unset.
func (e *Engine) SetLoopStart(t float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.media == nil {
		return 0
	}

	e.loopStart = core.Clamp(t, 0, e.loopEndLocked())

	return e.loopStart
}

// SetLoopEnd clamps t to [loop start, duration] and stores it.
func (e *Engine) SetLoopEnd(t float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.media == nil {
		return 0
	}

	e.loopEnd = max(e.loopStart, min(t, e.durationLocked()))

	return e.loopEnd
}

// PollLoop jumps back to the loop start when looping is enabled and the
// playhead reached the loop end, resuming playback if paused. Hosts call it
// on every time update. It reports whether a jump happened.
func (e *Engine) PollLoop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loopEnabled || e.media == nil {
		return false
	}

	end := e.loopEndLocked()
	if end <= e.loopStart || e.media.CurrentTime() < end {
		return false
	}

	e.media.Seek(e.loopStart)

	if e.media.Paused() {
		if err := e.media.Play(); err != nil {
			e.cfg.Logger.Printf("engine: loop: resume: %v", err)
		}
	}

	return true
}

func (e *Engine) durationLocked() float64 {
	d := e.media.Duration()
	if !core.IsFinite(d) || d < 0 {
		return 0
	}

	return d
}

func (e *Engine) loopEndLocked() float64 {
	if e.loopEnd > 0 {
		return e.loopEnd
	}

	if e.media == nil {
		return 0
	}

	return e.durationLocked()
}
