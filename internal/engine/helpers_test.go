package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakeMedia is an in-memory Media with a settable playhead.
type fakeMedia struct {
	id       string
	rate     float64
	channels int

	mu       sync.Mutex
	current  float64
	duration float64
	volume   float64
	speed    float64
	paused   bool
	playErr  error
	plays    int
}

func newFakeMedia(id string, channels int) *fakeMedia {
	return &fakeMedia{id: id, rate: 48000, channels: channels, duration: 120, volume: 1, speed: 1, paused: true}
}

func (m *fakeMedia) ID() string          { return m.id }
func (m *fakeMedia) SampleRate() float64 { return m.rate }
func (m *fakeMedia) Channels() int       { return m.channels }

func (m *fakeMedia) CurrentTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current
}

func (m *fakeMedia) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.duration
}

func (m *fakeMedia) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.volume
}

func (m *fakeMedia) PlaybackRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.speed
}

func (m *fakeMedia) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.paused
}

func (m *fakeMedia) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playErr != nil {
		return m.playErr
	}

	m.paused = false
	m.plays++

	return nil
}

func (m *fakeMedia) Pause() {
	m.mu.Lock()
	m.paused = true
	m.mu.Unlock()
}

func (m *fakeMedia) Seek(t float64) {
	m.mu.Lock()
	m.current = t
	m.mu.Unlock()
}

func (m *fakeMedia) SetVolume(v float64) {
	m.mu.Lock()
	m.volume = v
	m.mu.Unlock()
}

func (m *fakeMedia) SetPlaybackRate(r float64) {
	m.mu.Lock()
	m.speed = r
	m.mu.Unlock()
}

// switchLocator returns whatever media is currently set.
type switchLocator struct {
	mu    sync.Mutex
	media Media
}

func (l *switchLocator) set(m Media) {
	l.mu.Lock()
	l.media = m
	l.mu.Unlock()
}

func (l *switchLocator) Locate(context.Context) (Media, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.media == nil {
		return nil, ErrNoSource
	}

	return l.media, nil
}

func newReadyEngine(t testing.TB, m Media, opts ...Option) (*Engine, *switchLocator) {
	t.Helper()

	loc := &switchLocator{media: m}

	e := New(loc, opts...)
	if !e.Initialize(context.Background()) {
		t.Fatal("Initialize returned false")
	}

	return e, loc
}

func processBlocks(e *Engine, channels [][]float64, block int) {
	n := len(channels[0])
	views := make([][]float64, len(channels))

	for start := 0; start < n; start += block {
		end := min(start+block, n)
		for ch := range channels {
			views[ch] = channels[ch][start:end]
		}

		e.Process(views)
	}
}

var errRefused = errors.New("refused")
