package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-jungle/dsp/core"
	"github.com/cwbudde/algo-jungle/dsp/effectchain"
	"github.com/cwbudde/algo-jungle/dsp/effects/pitch"
	"github.com/cwbudde/algo-jungle/dsp/filter/bank"
)

// Stats counts pipeline lifecycle events.
type Stats struct {
	Builds    int `json:"builds"`
	Teardowns int `json:"teardowns"`
}

// Engine owns the processing pipeline for one media source at a time.
//
// All methods except Process are control operations; they are serialized
// internally and may be called from any goroutine. Process is called from
// the audio goroutine only.
type Engine struct {
	cfg     Config
	locator Locator
	router  *Router

	active atomic.Pointer[pipeline]

	mu          sync.Mutex
	media       Media
	pipe        *pipeline
	semitones   float64
	eqGains     [bank.NumBands]float64
	loopEnabled bool
	loopStart   float64
	loopEnd     float64
	stats       Stats
}

// New returns an uninitialized engine that finds its media through locator.
func New(locator Locator, opts ...Option) *Engine {
	return &Engine{
		cfg:     applyOptions(opts),
		locator: locator,
		router:  NewRouter(),
	}
}

// Config returns the engine settings.
func (e *Engine) Config() Config {
	return e.cfg
}

// Initialize attaches the engine to the media returned by the locator. It
// returns true when a pipeline is ready. Attaching to the source that is
// already attached is a no-op; a different source tears the old pipeline
// down and builds a new one carrying over pitch and EQ settings. On failure
// the engine is left uninitialized and Initialize may be retried.
func (e *Engine) Initialize(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.locator == nil {
		e.cfg.Logger.Printf("engine: initialize: no locator")
		return false
	}

	m, err := e.locator.Locate(ctx)
	if err == nil && m == nil {
		err = ErrNoSource
	}

	if err != nil {
		if errors.Is(err, ErrNoSource) {
			e.cfg.Logger.Printf("engine: initialize: no media found")
		} else {
			e.cfg.Logger.Printf("engine: initialize: locate media: %v", err)
		}

		return false
	}

	if e.pipe != nil && e.media != nil && e.media.ID() == m.ID() {
		return true
	}

	e.teardownLocked()

	p, err := newPipeline(m, e.router, e.cfg, pipelineState{semitones: e.semitones, eqGains: e.eqGains})
	if err != nil {
		e.media = nil
		e.cfg.Logger.Printf("engine: initialize: %v", err)

		return false
	}

	e.media = m
	e.pipe = p
	e.router.OnPitchChanged(e.semitones)
	e.active.Store(p)
	e.stats.Builds++
	e.cfg.Logger.Printf("engine: attached to %q (%d channels, %g Hz)", m.ID(), m.Channels(), m.SampleRate())

	return true
}

// Close tears the pipeline down and detaches from the media.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.teardownLocked()
	e.media = nil
}

func (e *Engine) teardownLocked() {
	if e.pipe == nil {
		return
	}

	e.active.Store(nil)
	e.pipe.close()
	e.cfg.Logger.Printf("engine: released pipeline for %q", e.pipe.sourceID)
	e.pipe = nil
	e.stats.Teardowns++
}

// Ready reports whether a pipeline is attached.
func (e *Engine) Ready() bool {
	return e.active.Load() != nil
}

// Process applies the pipeline to one host block in place, one slice per
// channel. It returns false, leaving channels untouched, when no pipeline is
// attached. It neither locks nor allocates.
func (e *Engine) Process(channels [][]float64) bool {
	p := e.active.Load()
	if p == nil {
		return false
	}

	return p.process(channels)
}

// SetPitch clamps semitones to [-12, 12], stores it and routes the pipeline.
// It returns the effective value.
func (e *Engine) SetPitch(semitones float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.semitones = core.Clamp(semitones, pitch.MinSemitones, pitch.MaxSemitones)
	if e.pipe == nil {
		return e.semitones
	}

	if offset, forward := e.router.OnPitchChanged(e.semitones); forward {
		if err := e.pipe.setParameter(nodePitch, "offset", offset); err != nil {
			e.cfg.Logger.Printf("engine: set pitch: %v", err)
		}
	}

	return e.semitones
}

// Pitch returns the stored pitch in semitones.
func (e *Engine) Pitch() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.semitones
}

// Routing returns the wet and dry path gains.
func (e *Engine) Routing() (wet, dry float64) {
	return e.router.WetGain(), e.router.DryGain()
}

// SetEqBand clamps gainDB to [-16, 16] and applies it to band index. Other
// bands are untouched. An index outside 0..9 returns bank.ErrBandIndex and
// changes nothing.
func (e *Engine) SetEqBand(index int, gainDB float64) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= bank.NumBands {
		return 0, fmt.Errorf("%w: %d", bank.ErrBandIndex, index)
	}

	g := core.Clamp(gainDB, bank.MinGainDB, bank.MaxGainDB)
	e.eqGains[index] = g

	if e.pipe != nil {
		if err := e.pipe.setParameter(nodeEQ, bandParam(index), g); err != nil {
			e.cfg.Logger.Printf("engine: set eq band %d: %v", index, err)
		}
	}

	return g, nil
}

// ResetEq sets every band to 0 dB and returns the new gains.
func (e *Engine) ResetEq() [bank.NumBands]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.eqGains = [bank.NumBands]float64{}

	if e.pipe != nil {
		for i := range bank.NumBands {
			if err := e.pipe.setParameter(nodeEQ, bandParam(i), 0); err != nil {
				e.cfg.Logger.Printf("engine: reset eq band %d: %v", i, err)
			}
		}
	}

	return e.eqGains
}

// EqGains returns the stored band gains.
func (e *Engine) EqGains() [bank.NumBands]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.eqGains
}

// Graph returns the per-channel graph a pipeline built now would load,
// including the stored pitch and EQ settings.
func (e *Engine) Graph() effectchain.GraphSpec {
	e.mu.Lock()
	defer e.mu.Unlock()

	return pipelineSpec(pipelineState{semitones: e.semitones, eqGains: e.eqGains}, e.cfg.MaxDelay)
}

// Stats returns the pipeline lifecycle counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.stats
}

func bandParam(i int) string {
	return "band" + strconv.Itoa(i)
}
