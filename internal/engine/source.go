package engine

import (
	"context"
	"errors"
)

// ErrNoSource is returned by a Locator when there is no media to attach to.
var ErrNoSource = errors.New("engine: no media source")

// Source identifies the audio stream a pipeline is built for. Two sources
// with the same ID are the same stream.
type Source interface {
	ID() string
	SampleRate() float64
	Channels() int
}

// Transport is the playback control surface of a media element. Times are
// in seconds.
type Transport interface {
	CurrentTime() float64
	Duration() float64
	Volume() float64
	PlaybackRate() float64
	Paused() bool
	Play() error
	Pause()
	Seek(seconds float64)
	SetVolume(v float64)
	SetPlaybackRate(r float64)
}

// Media is a playable audio source.
type Media interface {
	Source
	Transport
}

// Locator finds the media the engine should attach to.
type Locator interface {
	Locate(ctx context.Context) (Media, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context) (Media, error)

// Locate calls f(ctx).
func (f LocatorFunc) Locate(ctx context.Context) (Media, error) {
	return f(ctx)
}
