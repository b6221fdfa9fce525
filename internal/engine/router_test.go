package engine

import (
	"encoding/json"
	"testing"

	"github.com/cwbudde/algo-jungle/dsp/effectchain"
	"github.com/cwbudde/algo-jungle/dsp/effects/pitch"
	"github.com/cwbudde/algo-jungle/internal/testutil"
)

func TestRouterOnPitchChanged(t *testing.T) {
	tests := []struct {
		semitones   float64
		wantWet     float64
		wantForward bool
		wantOffset  float64
	}{
		{semitones: 0, wantWet: 0},
		{semitones: 12, wantWet: 1, wantForward: true, wantOffset: 2},
		{semitones: -12, wantWet: 1, wantForward: true, wantOffset: -1},
		{semitones: 0, wantWet: 0},
		{semitones: 5, wantWet: 1, wantForward: true, wantOffset: pitch.SemitonesToPitchOffset(5)},
	}

	r := NewRouter()
	for _, tt := range tests {
		offset, forward := r.OnPitchChanged(tt.semitones)
		if forward != tt.wantForward || offset != tt.wantOffset {
			t.Fatalf("OnPitchChanged(%v) = %v, %v, want %v, %v", tt.semitones, offset, forward, tt.wantOffset, tt.wantForward)
		}

		if r.WetGain() != tt.wantWet || r.DryGain() != 1-tt.wantWet {
			t.Fatalf("OnPitchChanged(%v): wet %v dry %v", tt.semitones, r.WetGain(), r.DryGain())
		}
	}
}

func TestPipelineSpecOrder(t *testing.T) {
	spec := pipelineSpec(pipelineState{}, 1)

	for _, want := range []string{nodeIn, nodeEQ, nodePitch, nodeWet, nodeDry, nodeMix, nodeOut} {
		found := false
		for _, n := range spec.Nodes {
			found = found || n.ID == want
		}

		if !found {
			t.Fatalf("node %q missing", want)
		}
	}

	if _, ok := spec.Nodes[3].Params["offset"]; ok {
		t.Fatal("zero pitch should not set a shifter offset")
	}
}

func TestConfigOptions(t *testing.T) {
	cfg := applyOptions([]Option{
		WithBlockSize(256),
		WithBlockSize(0),
		WithSmoothingTime(0.02),
		WithSmoothingTime(-1),
		WithMaxDelay(2),
		WithMaxDelay(0),
		WithLogger(nil),
		nil,
	})

	if cfg.Processing.BlockSize != 256 || cfg.Processing.SmoothingTime != 0.02 || cfg.MaxDelay != 2 || cfg.Logger == nil {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestGraphLoadsFromJSON(t *testing.T) {
	e := New(nil)
	e.SetPitch(-5)

	if _, err := e.SetEqBand(2, 4); err != nil {
		t.Fatal(err)
	}

	spec := e.Graph()

	raw, err := json.Marshal(spec)
	if err != nil {
		t.Fatal(err)
	}

	router := NewRouter()
	router.OnPitchChanged(-5)

	ctx := effectchain.Context{SampleRate: 48000, BlockSize: 128, SmoothingTime: 0.01, Selectors: router.selectors()}

	direct := effectchain.New(ctx, nil)
	if err := direct.Load(spec); err != nil {
		t.Fatalf("Load: %v", err)
	}

	parsed := effectchain.New(ctx, nil)
	if err := parsed.LoadGraph(string(raw)); err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}

	a := testutil.DeterministicNoise(8, 0.5, 2048)
	b := append([]float64(nil), a...)

	for start := 0; start < len(a); start += 128 {
		direct.Process(a[start : start+128])
		parsed.Process(b[start : start+128])
	}

	testutil.RequireBitExact(t, b, a)
}
