package param

import (
	"math"
	"sync"
	"testing"
)

func TestSmoothedApproachesTarget(t *testing.T) {
	s := NewSmoothed(0, 0.01, 48000)
	s.SetTarget(1)

	prev := 0.0
	for i := range 4800 {
		v := s.Next()
		if v < prev {
			t.Fatalf("sample %d: value decreased %v -> %v", i, prev, v)
		}

		prev = v
	}

	if math.Abs(s.Value()-1) > 1e-4 {
		t.Fatalf("value after 10 tau = %v, want ~1", s.Value())
	}
}

func TestSmoothedAdvanceMatchesNext(t *testing.T) {
	a := NewSmoothed(0.2, 0.01, 44100)
	b := NewSmoothed(0.2, 0.01, 44100)
	a.SetTarget(-0.7)
	b.SetTarget(-0.7)

	for range 300 {
		a.Next()
	}

	got := b.Advance(300)
	if math.Abs(got-a.Value()) > 1e-9 {
		t.Fatalf("Advance(300) = %v, Next x300 = %v", got, a.Value())
	}
}

func TestSmoothedFillConstant(t *testing.T) {
	s := NewSmoothed(0.5, 0.01, 48000)
	dst := make([]float64, 16)
	s.Fill(dst)

	for i, v := range dst {
		if v != 0.5 {
			t.Fatalf("dst[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestSmoothedZeroTauJumps(t *testing.T) {
	s := NewSmoothed(0, 0, 48000)
	s.SetTarget(3)

	if got := s.Next(); got != 3 {
		t.Fatalf("Next() = %v, want 3", got)
	}
}

func TestSmoothedConcurrentTargets(t *testing.T) {
	s := NewSmoothed(0, 0.01, 48000)

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for i := range 1000 {
			s.SetTarget(float64(i % 7))
		}
	}()

	buf := make([]float64, 128)
	for range 100 {
		s.Fill(buf)
	}

	wg.Wait()

	if tgt := s.Target(); tgt != 999%7 {
		t.Fatalf("Target() = %v, want %v", tgt, 999%7)
	}
}
