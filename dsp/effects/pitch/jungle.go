package pitch

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-jungle/dsp/core"
	"github.com/cwbudde/algo-jungle/dsp/delay"
	"github.com/cwbudde/algo-jungle/dsp/param"
	"github.com/cwbudde/algo-vecmath"
)

// DefaultMaxDelay is the default delay line length in seconds.
const DefaultMaxDelay = 1.0

// JungleOption mutates Jungle construction parameters.
type JungleOption func(*jungleConfig) error

type jungleConfig struct {
	activeTime    float64
	fadeTime      float64
	maxDelay      float64
	blockSize     int
	smoothingTime float64
}

func defaultJungleConfig() jungleConfig {
	return jungleConfig{
		activeTime:    ActiveTime,
		fadeTime:      FadeTime,
		maxDelay:      DefaultMaxDelay,
		blockSize:     core.DefaultBlockSize,
		smoothingTime: core.DefaultSmoothingTime,
	}
}

// WithMaxDelay sets the capacity of every delay line in seconds.
func WithMaxDelay(seconds float64) JungleOption {
	return func(cfg *jungleConfig) error {
		if seconds <= 0 || !core.IsFinite(seconds) {
			return fmt.Errorf("jungle max delay must be > 0 and finite: %f", seconds)
		}

		cfg.maxDelay = seconds

		return nil
	}
}

// WithBlockSize sets the largest block processed without chunking.
func WithBlockSize(n int) JungleOption {
	return func(cfg *jungleConfig) error {
		if n <= 0 {
			return fmt.Errorf("jungle block size must be > 0: %d", n)
		}

		cfg.blockSize = n

		return nil
	}
}

// WithSmoothingTime sets the modulation depth time constant in seconds.
func WithSmoothingTime(seconds float64) JungleOption {
	return func(cfg *jungleConfig) error {
		if seconds < 0 || !core.IsFinite(seconds) {
			return fmt.Errorf("jungle smoothing must be >= 0 and finite: %f", seconds)
		}

		cfg.smoothingTime = seconds

		return nil
	}
}

// WithModulationTiming overrides the ramp period and cross-fade length.
func WithModulationTiming(activeTime, fadeTime float64) JungleOption {
	return func(cfg *jungleConfig) error {
		cfg.activeTime = activeTime
		cfg.fadeTime = fadeTime

		return nil
	}
}

// DelayLinePair holds the two staggered voices of one shift direction.
type DelayLinePair struct {
	A, B *delay.Line
	ramp []float64
}

func newDelayLinePair(maxDelay, sampleRate float64, ramp []float64) (DelayLinePair, error) {
	a, err := delay.NewSeconds(maxDelay, sampleRate)
	if err != nil {
		return DelayLinePair{}, err
	}

	b, err := delay.NewSeconds(maxDelay, sampleRate)
	if err != nil {
		return DelayLinePair{}, err
	}

	return DelayLinePair{A: a, B: b, ramp: ramp}, nil
}

func (p *DelayLinePair) write(x float64) {
	p.A.Write(x)
	p.B.Write(x)
}

func (p *DelayLinePair) reset() {
	p.A.Reset()
	p.B.Reset()
}

// Jungle is a granular delay-line pitch shifter.
//
// SetPitchOffset may be called from any goroutine; ProcessBlock, Reset and
// Release belong to the processing goroutine.
type Jungle struct {
	sampleRate float64
	blockSize  int
	mods       ModulationBuffers

	down DelayLinePair
	up   DelayLinePair

	voiceA cursor
	voiceB cursor

	shiftUp atomic.Bool
	depth   *param.Smoothed // seconds

	depthBuf []float64
	busA     []float64
	busB     []float64
	fadeA    []float64
	fadeB    []float64

	released bool
}

// NewJungle constructs a shifter with every buffer preallocated. It starts
// on the shift-down ramps with the depth resting at 0.5*DelayTime.
func NewJungle(sampleRate float64, opts ...JungleOption) (*Jungle, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("jungle sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultJungleConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	mods, err := NewModulationBuffers(sampleRate, cfg.activeTime, cfg.fadeTime)
	if err != nil {
		return nil, fmt.Errorf("jungle: %w", err)
	}

	if cfg.maxDelay < DelayTime {
		return nil, fmt.Errorf("jungle max delay %f is below the modulation swing %f", cfg.maxDelay, DelayTime)
	}

	down, err := newDelayLinePair(cfg.maxDelay, sampleRate, mods.ShiftDown)
	if err != nil {
		return nil, fmt.Errorf("jungle: %w", err)
	}

	up, err := newDelayLinePair(cfg.maxDelay, sampleRate, mods.ShiftUp)
	if err != nil {
		return nil, fmt.Errorf("jungle: %w", err)
	}

	stagger := mods.ActiveLen - mods.FadeLen

	j := &Jungle{
		sampleRate: sampleRate,
		blockSize:  cfg.blockSize,
		mods:       mods,
		down:       down,
		up:         up,
		voiceA:     newCursor(mods.Len(), 0),
		voiceB:     newCursor(mods.Len(), stagger),
		depth:      param.NewSmoothed(0.5*DelayTime, cfg.smoothingTime, sampleRate),
		depthBuf:   make([]float64, cfg.blockSize),
		busA:       make([]float64, cfg.blockSize),
		busB:       make([]float64, cfg.blockSize),
		fadeA:      make([]float64, cfg.blockSize),
		fadeB:      make([]float64, cfg.blockSize),
	}

	return j, nil
}

// SampleRate returns the rate the modulation buffers were built for.
func (j *Jungle) SampleRate() float64 { return j.sampleRate }

// Modulation returns the shared ramp and fade shapes.
func (j *Jungle) Modulation() ModulationBuffers { return j.mods }

// SetPitchOffset selects the shift direction and scales the modulation
// depth. mult > 0 enables the shift-up pair, anything else the shift-down
// pair; the switch is hard. The depth target becomes 0.5*DelayTime*|mult|
// seconds and is approached exponentially.
func (j *Jungle) SetPitchOffset(mult float64) {
	if math.IsNaN(mult) {
		mult = 0
	}

	j.shiftUp.Store(mult > 0)
	j.depth.SetTarget(0.5 * DelayTime * math.Abs(mult))
}

// ShiftingUp reports whether the shift-up pair is selected.
func (j *Jungle) ShiftingUp() bool {
	return j.shiftUp.Load()
}

// PairGains returns the 0/1 gains of the shift-down and shift-up pairs.
func (j *Jungle) PairGains() (down, up float64) {
	if j.shiftUp.Load() {
		return 0, 1
	}

	return 1, 0
}

// DepthTarget returns the modulation depth in seconds being approached.
func (j *Jungle) DepthTarget() float64 {
	return j.depth.Target()
}

// Depth returns the current smoothed modulation depth in seconds.
// It must not be called concurrently with ProcessBlock.
func (j *Jungle) Depth() float64 {
	return j.depth.Value()
}

// Reset clears the delay lines and restarts both voices. The depth jumps to
// its target.
func (j *Jungle) Reset() {
	if j.released {
		return
	}

	j.down.reset()
	j.up.reset()
	j.voiceA.reset()
	j.voiceB.reset()
	j.depth.Settle()
}

// Release drops every buffer. A released shifter outputs silence.
func (j *Jungle) Release() {
	j.released = true
	j.down = DelayLinePair{}
	j.up = DelayLinePair{}
	j.depthBuf, j.busA, j.busB, j.fadeA, j.fadeB = nil, nil, nil, nil, nil
}

// ProcessBlock shifts buf in place. Blocks longer than the configured block
// size are processed in chunks. It does not allocate or lock.
func (j *Jungle) ProcessBlock(buf []float64) {
	if j.released {
		core.Zero(buf)
		return
	}

	for len(buf) > j.blockSize {
		j.process(buf[:j.blockSize])
		buf = buf[j.blockSize:]
	}

	j.process(buf)
}

func (j *Jungle) process(buf []float64) {
	n := len(buf)
	if n == 0 {
		return
	}

	active, idle := &j.down, &j.up
	if j.shiftUp.Load() {
		active, idle = idle, active
	}

	depth := j.depthBuf[:n]
	busA, busB := j.busA[:n], j.busB[:n]
	fadeA, fadeB := j.fadeA[:n], j.fadeB[:n]
	fade := j.mods.Fade

	j.depth.Fill(depth)

	for i, x := range buf {
		active.write(x)
		idle.write(x)

		scale := depth[i] * j.sampleRate

		if p, ok := j.voiceA.next(); ok {
			busA[i] = active.A.ReadFractional(scale * active.ramp[p])
			fadeA[i] = fade[p]
		} else {
			busA[i], fadeA[i] = 0, 0
		}

		if p, ok := j.voiceB.next(); ok {
			busB[i] = active.B.ReadFractional(scale * active.ramp[p])
			fadeB[i] = fade[p]
		} else {
			busB[i], fadeB[i] = 0, 0
		}
	}

	vecmath.MulBlockInPlace(busA, fadeA)
	vecmath.MulBlock(buf, busB, fadeB)
	vecmath.AddBlockInPlace(buf, busA)
}
