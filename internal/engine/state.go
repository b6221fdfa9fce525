package engine

import (
	"encoding/json"

	"github.com/cwbudde/algo-jungle/dsp/filter/bank"
)

// Snapshot is the host-visible engine state.
type Snapshot struct {
	CurrentTime float64                `json:"currentTime"`
	Duration    float64                `json:"duration"`
	Volume      float64                `json:"volume"`
	Speed       float64                `json:"speed"`
	Pitch       float64                `json:"pitch"`
	EqGains     [bank.NumBands]float64 `json:"eqGains"`
	LoopEnabled bool                   `json:"loopEnabled"`
	LoopStart   float64                `json:"loopStart"`
	LoopEnd     float64                `json:"loopEnd"`
	IsPlaying   bool                   `json:"isPlaying"`
	IsReady     bool                   `json:"isReady"`
}

// Snapshot returns the current state. Without media the transport fields
// hold neutral defaults.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		Volume:      1,
		Speed:       1,
		Pitch:       e.semitones,
		EqGains:     e.eqGains,
		LoopEnabled: e.loopEnabled,
		LoopStart:   e.loopStart,
		LoopEnd:     e.loopEnd,
	}

	if e.media != nil {
		s.CurrentTime = e.media.CurrentTime()
		s.Duration = e.durationLocked()
		s.Volume = e.media.Volume()
		s.Speed = e.media.PlaybackRate()
		s.LoopEnd = e.loopEndLocked()
		s.IsPlaying = !e.media.Paused()
		s.IsReady = e.pipe != nil
	}

	return s
}

// MarshalJSON encodes the snapshot of e.
func (e *Engine) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Snapshot())
}
