package host

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/cwbudde/algo-jungle/dsp/core"
	"github.com/cwbudde/algo-jungle/internal/engine"
)

const (
	resampleQuality = 4
	speakerLatency  = 100 * time.Millisecond
	pollInterval    = 250 * time.Millisecond
)

// LoopPoller is polled by Player.Run on every time update.
type LoopPoller interface {
	PollLoop() bool
}

// Player plays WAV files through the speaker. The open track is the media
// the engine attaches to: Player implements engine.Locator and the track
// implements engine.Media.
//
// The signal path is source -> processor -> resampler (speed) -> volume ->
// pause control -> speaker.
type Player struct {
	mu        sync.Mutex
	proc      Processor
	blockSize int
	logger    *log.Logger

	speakerRate beep.SampleRate
	speakerOn   bool
	track       *track
}

var _ engine.Locator = (*Player)(nil)

// NewPlayer returns a player that routes audio through proc in blocks of
// blockSize frames. A nil logger discards.
func NewPlayer(proc Processor, blockSize int, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if blockSize <= 0 {
		blockSize = core.DefaultBlockSize
	}

	return &Player{proc: proc, blockSize: blockSize, logger: logger}
}

// SetProcessor replaces the processor used by tracks opened afterwards.
func (p *Player) SetProcessor(proc Processor) {
	p.mu.Lock()
	p.proc = proc
	p.mu.Unlock()
}

// Open decodes a WAV file and queues it paused on the speaker, replacing
// the current track. The speaker is initialized at the first file's rate.
func (p *Player) Open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("host: open: %w", err)
	}

	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("host: decode %s: %w", path, err)
	}

	id, err := filepath.Abs(path)
	if err != nil {
		id = path
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.speakerOn {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(speakerLatency)); err != nil {
			stream.Close()
			return fmt.Errorf("host: init speaker: %w", err)
		}

		p.speakerRate = format.SampleRate
		p.speakerOn = true
	}

	t := newTrack(id, stream, format, p.speakerRate, p.blockSize, p.proc)

	speaker.Clear()

	if p.track != nil {
		p.track.close()
	}

	p.track = t
	speaker.Play(t.ctrl)
	p.logger.Printf("host: opened %s (%d ch, %d Hz, %.1fs)", id, format.NumChannels, format.SampleRate, t.Duration())

	return nil
}

// Locate returns the open track, or engine.ErrNoSource.
func (p *Player) Locate(context.Context) (engine.Media, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.track == nil {
		return nil, engine.ErrNoSource
	}

	return p.track, nil
}

// Run polls the loop state until ctx ends.
func (p *Player) Run(ctx context.Context, poller LoopPoller) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			poller.PollLoop()
		}
	}
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.speakerOn {
		return
	}

	speaker.Clear()

	if p.track != nil {
		p.track.close()
		p.track = nil
	}

	speaker.Close()
	p.speakerOn = false
}

// track is one decoded file on the speaker. Every field touched by the
// speaker goroutine is guarded by speaker.Lock.
type track struct {
	id          string
	format      beep.Format
	speakerRate beep.SampleRate

	stream    beep.StreamSeekCloser
	proc      *processStreamer
	resampler *beep.Resampler
	volume    *effects.Volume
	ctrl      *beep.Ctrl

	linearVolume float64
	rate         float64
}

var _ engine.Media = (*track)(nil)

func newTrack(id string, stream beep.StreamSeekCloser, format beep.Format, speakerRate beep.SampleRate, blockSize int, proc Processor) *track {
	t := &track{id: id, format: format, speakerRate: speakerRate, stream: stream, linearVolume: 1, rate: 1}

	t.proc = newProcessStreamer(stream, format.NumChannels, blockSize, proc)
	t.resampler = beep.ResampleRatio(resampleQuality, t.ratio(), t.proc)
	t.volume = &effects.Volume{Streamer: t.resampler, Base: 2}
	t.ctrl = &beep.Ctrl{Streamer: t.volume, Paused: true}

	return t
}

func (t *track) ratio() float64 {
	return float64(t.format.SampleRate) / float64(t.speakerRate) * t.rate
}

func (t *track) ID() string          { return t.id }
func (t *track) SampleRate() float64 { return float64(t.format.SampleRate) }
func (t *track) Channels() int       { return min(t.format.NumChannels, 2) }

func (t *track) CurrentTime() float64 {
	speaker.Lock()
	defer speaker.Unlock()

	return t.format.SampleRate.D(t.stream.Position()).Seconds()
}

func (t *track) Duration() float64 {
	speaker.Lock()
	defer speaker.Unlock()

	return t.format.SampleRate.D(t.stream.Len()).Seconds()
}

func (t *track) Volume() float64 {
	speaker.Lock()
	defer speaker.Unlock()

	return t.linearVolume
}

func (t *track) PlaybackRate() float64 {
	speaker.Lock()
	defer speaker.Unlock()

	return t.rate
}

func (t *track) Paused() bool {
	speaker.Lock()
	defer speaker.Unlock()

	return t.ctrl.Paused || t.proc.ended
}

// Play resumes playback, restarting from the beginning at the end.
func (t *track) Play() error {
	speaker.Lock()
	defer speaker.Unlock()

	if t.proc.ended || t.stream.Position() >= t.stream.Len() {
		if err := t.stream.Seek(0); err != nil {
			return fmt.Errorf("host: rewind: %w", err)
		}

		t.proc.ended = false
	}

	t.ctrl.Paused = false

	return nil
}

func (t *track) Pause() {
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()
}

func (t *track) Seek(seconds float64) {
	speaker.Lock()
	defer speaker.Unlock()

	pos := t.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	pos = min(max(pos, 0), t.stream.Len())

	if err := t.stream.Seek(pos); err == nil && pos < t.stream.Len() {
		t.proc.ended = false
	}
}

func (t *track) SetVolume(v float64) {
	speaker.Lock()
	defer speaker.Unlock()

	t.linearVolume = v
	t.volume.Silent = v <= 0

	if v > 0 {
		t.volume.Volume = math.Log2(v)
	}
}

func (t *track) SetPlaybackRate(r float64) {
	speaker.Lock()
	defer speaker.Unlock()

	t.rate = r
	t.resampler.SetRatio(t.ratio())
}

func (t *track) close() {
	t.stream.Close()
}
