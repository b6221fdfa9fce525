package engine

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/cwbudde/algo-jungle/dsp/core"
	"github.com/cwbudde/algo-jungle/dsp/effectchain"
	"github.com/cwbudde/algo-jungle/dsp/effects/pitch"
	"github.com/cwbudde/algo-jungle/dsp/filter/bank"
)

// Node IDs of the per-channel graph.
const (
	nodeIn    = "in"
	nodeEQ    = "eq"
	nodePitch = "pitch"
	nodeWet   = "wet"
	nodeDry   = "dry"
	nodeMix   = "mix"
	nodeOut   = "out"
)

// pipelineState is the control state a new graph starts from.
type pipelineState struct {
	semitones float64
	eqGains   [bank.NumBands]float64
}

// pipelineSpec describes one channel's graph.
func pipelineSpec(st pipelineState, maxDelay float64) effectchain.GraphSpec {
	eq := make(map[string]any, bank.NumBands)
	for i, g := range st.eqGains {
		eq[bandParam(i)] = g
	}

	shift := map[string]any{"maxDelay": maxDelay}
	if st.semitones != 0 {
		shift["offset"] = pitch.SemitonesToPitchOffset(st.semitones)
	}

	spec := effectchain.GraphSpec{Nodes: []effectchain.NodeSpec{
		{ID: effectchain.InputNodeID},
		{ID: nodeIn, Type: effectchain.NodeTypeGain},
		{ID: nodeEQ, Type: effectchain.NodeTypeEqualizer, Params: eq},
		{ID: nodePitch, Type: effectchain.NodeTypeJungle, Params: shift},
		{ID: nodeWet, Type: effectchain.NodeTypeSwitch, Params: map[string]any{"selector": selectorWet}},
		{ID: nodeDry, Type: effectchain.NodeTypeSwitch, Params: map[string]any{"selector": selectorWet, "invert": true}},
		{ID: nodeMix, Type: effectchain.NodeTypeSum},
		{ID: nodeOut, Type: effectchain.NodeTypeGain},
		{ID: effectchain.OutputNodeID},
	}}

	return spec.
		Connect(effectchain.InputNodeID, nodeIn).
		Connect(nodeIn, nodeEQ).
		Connect(nodeEQ, nodePitch).
		Connect(nodeEQ, nodeDry).
		Connect(nodePitch, nodeWet).
		Connect(nodeDry, nodeMix).
		Connect(nodeWet, nodeMix).
		Connect(nodeMix, nodeOut).
		Connect(nodeOut, effectchain.OutputNodeID)
}

// pipeline is the processing graph attached to one source: one chain per
// channel, all switched by the same router.
type pipeline struct {
	sourceID string
	router   *Router
	chains   []*effectchain.Chain

	closed atomic.Bool
	busy   atomic.Int32
}

func newPipeline(src Source, router *Router, cfg Config, st pipelineState) (*pipeline, error) {
	rate := src.SampleRate()
	if rate <= 0 {
		return nil, fmt.Errorf("engine: source %q: sample rate must be > 0: %f", src.ID(), rate)
	}

	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("engine: source %q: channel count must be > 0: %d", src.ID(), channels)
	}

	proc := core.ApplyProcessorOptions(
		core.WithSampleRate(rate),
		core.WithBlockSize(cfg.Processing.BlockSize),
		core.WithSmoothingTime(cfg.Processing.SmoothingTime),
	)

	ctx := effectchain.Context{
		SampleRate:    proc.SampleRate,
		BlockSize:     proc.BlockSize,
		SmoothingTime: proc.SmoothingTime,
		Selectors:     router.selectors(),
	}
	spec := pipelineSpec(st, cfg.MaxDelay)

	p := &pipeline{sourceID: src.ID(), router: router, chains: make([]*effectchain.Chain, channels)}
	for ch := range p.chains {
		c := effectchain.New(ctx, nil)
		if err := c.Load(spec); err != nil {
			p.release()
			return nil, fmt.Errorf("engine: channel %d: %w", ch, err)
		}

		p.chains[ch] = c
	}

	return p, nil
}

// process runs one host block. Channels beyond the pipeline's channel count
// pass through unchanged.
func (p *pipeline) process(channels [][]float64) bool {
	p.busy.Add(1)
	defer p.busy.Add(-1)

	if p.closed.Load() {
		return false
	}

	p.router.latch()

	for ch, c := range p.chains {
		if ch >= len(channels) {
			break
		}

		c.ProcessLatched(channels[ch])
	}

	return true
}

// setParameter forwards a parameter change to node on every channel.
func (p *pipeline) setParameter(node, name string, value float64) error {
	var errs []error
	for _, c := range p.chains {
		if err := c.SetParameter(node, name, value); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// close stops further processing, waits for an in-flight block and drops
// every buffer.
func (p *pipeline) close() {
	p.closed.Store(true)

	for p.busy.Load() > 0 {
		runtime.Gosched()
	}

	p.release()
}

func (p *pipeline) release() {
	for _, c := range p.chains {
		if c != nil {
			c.Release()
		}
	}

	p.chains = nil
}
