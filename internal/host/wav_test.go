package host

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-jungle/internal/testutil"
)

func TestWAVRoundTrip(t *testing.T) {
	left := testutil.DeterministicSine(440, 8000, 0.5, 5000)
	right := testutil.DeterministicNoise(7, 0.9, 5000)

	path := filepath.Join(t.TempDir(), "x.wav")
	if err := SaveWAV(path, 8000, [][]float64{left, right}); err != nil {
		t.Fatalf("SaveWAV: %v", err)
	}

	c, err := LoadWAV(path)
	if err != nil {
		t.Fatalf("LoadWAV: %v", err)
	}

	if c.SampleRate() != 8000 || c.Channels() != 2 || c.Frames() != 5000 {
		t.Fatalf("loaded %v Hz, %d ch, %d frames", c.SampleRate(), c.Channels(), c.Frames())
	}

	const eps = 1.0 / 32767

	testutil.RequireSliceNearlyEqual(t, c.Data()[0], left, eps)
	testutil.RequireSliceNearlyEqual(t, c.Data()[1], right, eps)
}

func TestEncodeWAVClipsAndDecodes(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeWAV(&buf, 16000, [][]float64{{2, -2, 0}}); err != nil {
		t.Fatal(err)
	}

	c, err := DecodeWAV(bytes.NewReader(buf.Bytes()), "mem")
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, c.Data()[0], []float64{1, -1, 0}, 1e-4)
}

func TestEncodeWAVRejectsChannels(t *testing.T) {
	var buf bytes.Buffer

	err := EncodeWAV(&buf, 16000, [][]float64{{0}, {0}, {0}})
	if !errors.Is(err, ErrWAVChannels) {
		t.Fatalf("err = %v, want ErrWAVChannels", err)
	}

	if err := EncodeWAV(&buf, 0, [][]float64{{0}}); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestLoadWAVMissingFile(t *testing.T) {
	if _, err := LoadWAV(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatal("expected error")
	}
}
