package delay

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-jungle/internal/testutil"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestNewValidation(t *testing.T) {
	for _, size := range []int{-1, 0, 3} {
		if _, err := New(size); err == nil {
			t.Fatalf("expected error for size=%d", size)
		}
	}

	if _, err := NewSeconds(0, 48000); err == nil {
		t.Fatal("expected error for zero duration")
	}

	if _, err := NewSeconds(1, math.NaN()); err == nil {
		t.Fatal("expected error for NaN sample rate")
	}
}

func TestNewSecondsCoversDuration(t *testing.T) {
	d, err := NewSeconds(1, 44100)
	if err != nil {
		t.Fatal(err)
	}

	if d.MaxDelay() < 44100 {
		t.Fatalf("MaxDelay = %v, want >= 44100", d.MaxDelay())
	}
}

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 8 {
		d.Write(float64(i))
	}

	// delay=0 => most recently written (7)
	if got := d.Read(0); got != 7 {
		t.Fatalf("got %v want 7", got)
	}

	if got := d.Read(3); got != 4 {
		t.Fatalf("got %v want 4", got)
	}
}

func TestReadWraparound(t *testing.T) {
	d, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 10 {
		d.Write(float64(i))
	}

	want := []float64{9, 8, 7, 6}
	for delay, w := range want {
		if got := d.Read(delay); got != w {
			t.Fatalf("Read(%d) = %v want %v", delay, got, w)
		}
	}
}

func TestZeroDelayIsPassThrough(t *testing.T) {
	d, err := New(64)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.DeterministicNoise(7, 1, 500)
	for i, x := range in {
		d.Write(x)

		if got := d.ReadFractional(0); got != x {
			t.Fatalf("sample %d: got %v want %v", i, got, x)
		}
	}
}

func TestReset(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 8 {
		d.Write(float64(i + 1))
	}

	d.Reset()

	for i := range 8 {
		if got := d.Read(i); got != 0 {
			t.Fatalf("Read(%d) after reset = %v, want 0", i, got)
		}
	}
}

func TestReadFractionalLinearRamp(t *testing.T) {
	d, err := New(32)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 32 {
		d.Write(float64(i))
	}

	// Newest is 31; delay 2.5 lies halfway between 29 and 28.
	if got := d.ReadFractional(2.5); !approxEqual(got, 28.5, 1e-12) {
		t.Fatalf("got %v want 28.5", got)
	}
}

func TestReadFractionalClamped(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 16 {
		d.Write(float64(i))
	}

	if got := d.ReadFractional(-3); got != d.Read(0) {
		t.Fatalf("negative delay: got %v want %v", got, d.Read(0))
	}

	if got, want := d.ReadFractional(1000), d.ReadFractional(d.MaxDelay()); got != want {
		t.Fatalf("oversized delay: got %v want %v", got, want)
	}
}

func TestReadFractionalDelaysSine(t *testing.T) {
	const (
		rate  = 48000.0
		freq  = 440.0
		delay = 37.25
	)

	d, err := New(256)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.DeterministicSine(freq, rate, 1, 2048)
	for i, x := range in {
		d.Write(x)

		if i < 256 {
			continue
		}

		want := math.Sin(2 * math.Pi * freq * (float64(i) - delay) / rate)
		if got := d.ReadFractional(delay); !approxEqual(got, want, 1e-4) {
			t.Fatalf("sample %d: got %v want %v", i, got, want)
		}
	}
}

func BenchmarkReadFractional(b *testing.B) {
	d, _ := New(48000)
	for i := range 48000 {
		d.Write(math.Sin(float64(i) * 0.01))
	}

	b.ResetTimer()

	for i := range b.N {
		_ = d.ReadFractional(float64(i%4000) + 0.37)
	}
}
