package host

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-jungle/dsp/spectrum"
	"github.com/cwbudde/algo-jungle/internal/engine"
	"github.com/cwbudde/algo-jungle/internal/testutil"
)

func TestRenderNeutralIsIdentity(t *testing.T) {
	in := testutil.Channels(testutil.DeterministicNoise(5, 0.5, 3000), 2)

	c, err := NewClip("r", 48000, in)
	if err != nil {
		t.Fatal(err)
	}

	out, err := Render(context.Background(), engine.New(StaticLocator{Media: c}), c, 200)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireBitExact(t, out[0], in[0])
	testutil.RequireBitExact(t, out[1], in[1])
}

func TestRenderPitchAndEQ(t *testing.T) {
	const rate = 44100.0

	c, err := NewClip("r", rate, [][]float64{testutil.DeterministicSine(440, rate, 0.5, int(2*rate))})
	if err != nil {
		t.Fatal(err)
	}

	e := engine.New(StaticLocator{Media: c})
	e.SetPitch(-12)

	out, err := Render(context.Background(), e, c, 128)
	if err != nil {
		t.Fatal(err)
	}

	got, err := spectrum.PeakFrequency(out[0][int(0.2*rate):], rate)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(got-220)/220 > 0.05 {
		t.Fatalf("dominant frequency = %.1f Hz, want 220 Hz", got)
	}
}

func TestRenderNotReady(t *testing.T) {
	c := newTestClip(t, 1, 10)

	_, err := Render(context.Background(), engine.New(StaticLocator{}), c, 64)
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("err = %v, want ErrNotReady", err)
	}
}
