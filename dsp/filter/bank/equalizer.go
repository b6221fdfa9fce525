package bank

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-jungle/dsp/core"
	"github.com/cwbudde/algo-jungle/dsp/filter/biquad"
	"github.com/cwbudde/algo-jungle/dsp/filter/design"
)

// NumBands is the number of equalizer bands.
const NumBands = 10

// Gain limits and filter quality shared by every band.
const (
	MinGainDB = -16.0
	MaxGainDB = 16.0
	DefaultQ  = 2.0
)

// Frequencies lists the band centers in processing order.
var Frequencies = [NumBands]float64{32, 64, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

// ErrBandIndex is returned for band indices outside 0..NumBands-1.
var ErrBandIndex = errors.New("bank: band index out of range")

// settleDB is the distance at which a smoothed gain snaps onto its target.
const settleDB = 1e-6

// Band describes one equalizer band.
type Band struct {
	Frequency float64 // center frequency in Hz
	GainDB    float64 // stored (target) gain in dB
}

type config struct {
	q             float64
	smoothingTime float64
}

// Option configures an Equalizer.
type Option func(*config)

// WithQ overrides the quality factor of every band.
func WithQ(q float64) Option {
	return func(cfg *config) {
		if q > 0 && core.IsFinite(q) {
			cfg.q = q
		}
	}
}

// WithSmoothingTime sets the gain smoothing time constant in seconds.
// Zero applies new gains at the next block.
func WithSmoothingTime(seconds float64) Option {
	return func(cfg *config) {
		if seconds >= 0 && core.IsFinite(seconds) {
			cfg.smoothingTime = seconds
		}
	}
}

// Equalizer is a 10-band serial peaking equalizer.
type Equalizer struct {
	sampleRate float64
	q          float64
	coef       float64

	protos [NumBands]design.Peaking
	chain  *biquad.Chain

	target [NumBands]atomic.Uint64 // control side, float64 bits
	live   [NumBands]atomic.Uint64 // published by ProcessBlock, float64 bits

	current [NumBands]float64 // owned by the processing goroutine
}

// NewEqualizer builds a flat equalizer for sampleRate. Bands at or above
// Nyquist are kept in the cascade as pass-through sections.
func NewEqualizer(sampleRate float64, opts ...Option) (*Equalizer, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("equalizer sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := config{q: DefaultQ, smoothingTime: core.DefaultSmoothingTime}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	e := &Equalizer{
		sampleRate: sampleRate,
		q:          cfg.q,
		coef:       core.SmoothingCoefficient(cfg.smoothingTime, sampleRate),
	}

	coeffs := make([]biquad.Coefficients, NumBands)
	for i, f := range Frequencies {
		e.protos[i] = design.NewPeaking(f, cfg.q, sampleRate)
		coeffs[i] = e.protos[i].Coefficients(0)
	}

	e.chain = biquad.NewChain(coeffs)

	return e, nil
}

// SampleRate returns the rate the filters were designed for.
func (e *Equalizer) SampleRate() float64 {
	return e.sampleRate
}

// Q returns the band quality factor.
func (e *Equalizer) Q() float64 {
	return e.q
}

// SetBandGain clamps gainDB to [MinGainDB, MaxGainDB], stores it as band
// index's target and returns the clamped value. Other bands are untouched.
func (e *Equalizer) SetBandGain(index int, gainDB float64) (float64, error) {
	if index < 0 || index >= NumBands {
		return 0, fmt.Errorf("%w: %d", ErrBandIndex, index)
	}

	g := core.Clamp(gainDB, MinGainDB, MaxGainDB)
	e.target[index].Store(math.Float64bits(g))

	return g, nil
}

// ResetAll sets every band back to 0 dB and returns the new gains.
func (e *Equalizer) ResetAll() [NumBands]float64 {
	var zeros [NumBands]float64
	for i := range e.target {
		e.target[i].Store(math.Float64bits(0))
	}

	return zeros
}

// Gain returns the stored gain of band index.
func (e *Equalizer) Gain(index int) (float64, error) {
	if index < 0 || index >= NumBands {
		return 0, fmt.Errorf("%w: %d", ErrBandIndex, index)
	}

	return math.Float64frombits(e.target[index].Load()), nil
}

// Gains returns every stored gain in band order.
func (e *Equalizer) Gains() [NumBands]float64 {
	var out [NumBands]float64
	for i := range e.target {
		out[i] = math.Float64frombits(e.target[i].Load())
	}

	return out
}

// LiveGainDB returns the gain band index's filter is currently running at.
// It trails the stored gain while smoothing is in progress.
func (e *Equalizer) LiveGainDB(index int) float64 {
	if index < 0 || index >= NumBands {
		return 0
	}

	return math.Float64frombits(e.live[index].Load())
}

// Bands returns the band layout with stored gains.
func (e *Equalizer) Bands() []Band {
	gains := e.Gains()

	out := make([]Band, NumBands)
	for i := range out {
		out[i] = Band{Frequency: Frequencies[i], GainDB: gains[i]}
	}

	return out
}

// MagnitudeDB returns the magnitude response of the cascade at freqHz for
// the stored gains.
func (e *Equalizer) MagnitudeDB(freqHz float64) float64 {
	coeffs := make([]biquad.Coefficients, NumBands)
	for i := range e.protos {
		coeffs[i] = e.protos[i].Coefficients(math.Float64frombits(e.target[i].Load()))
	}

	return biquad.NewChain(coeffs).MagnitudeDB(freqHz, e.sampleRate)
}

// ProcessBlock filters buf in place through all bands in ascending order.
// It does not allocate or lock.
func (e *Equalizer) ProcessBlock(buf []float64) {
	if len(buf) == 0 {
		return
	}

	e.advance(len(buf))

	for i := range NumBands {
		s := e.chain.Section(i)
		if s.IsIdentity() && s.State() == [2]float64{} {
			// A settled flat band is an exact pass-through.
			continue
		}

		s.ProcessBlock(buf)
	}
}

// Reset clears filter state and jumps every band to its stored gain.
func (e *Equalizer) Reset() {
	e.chain.Reset()

	for i := range e.current {
		e.current[i] = math.Float64frombits(e.target[i].Load())
		e.apply(i)
	}
}

func (e *Equalizer) advance(n int) {
	remain := math.Pow(1-e.coef, float64(n))

	for i := range e.current {
		target := math.Float64frombits(e.target[i].Load())
		if e.current[i] == target {
			continue
		}

		next := target + (e.current[i]-target)*remain
		if math.Abs(next-target) < settleDB {
			next = target
		}

		e.current[i] = next
		e.apply(i)
	}
}

func (e *Equalizer) apply(i int) {
	e.chain.SetCoefficients(i, e.protos[i].Coefficients(e.current[i]))
	e.live[i].Store(math.Float64bits(e.current[i]))
}
