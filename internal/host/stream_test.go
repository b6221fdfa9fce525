package host

import "testing"

// negate flips the sign of every sample and records block sizes.
type negate struct {
	blocks []int
}

func (p *negate) Process(channels [][]float64) bool {
	p.blocks = append(p.blocks, len(channels[0]))

	for _, ch := range channels {
		for i := range ch {
			ch[i] = -ch[i]
		}
	}

	return true
}

func TestProcessStreamerStereo(t *testing.T) {
	c := newTestClip(t, 2, 300)
	c.Play()

	proc := &negate{}
	s := newProcessStreamer(c.Streamer(), 2, 128, proc)

	frames := make([][2]float64, 300)
	if n, ok := s.Stream(frames); n != 300 || !ok {
		t.Fatalf("Stream() = %d, %v", n, ok)
	}

	for i, f := range frames {
		if f[0] != -c.Data()[0][i] || f[1] != -c.Data()[1][i] {
			t.Fatalf("frame %d = %v, want negated input", i, f)
		}
	}

	if len(proc.blocks) != 3 || proc.blocks[2] != 300-256 {
		t.Fatalf("blocks = %v, want 128, 128, 44", proc.blocks)
	}
}

func TestProcessStreamerMonoAndEnd(t *testing.T) {
	c := newTestClip(t, 1, 100)
	c.Play()

	s := newProcessStreamer(c.Streamer(), 1, 64, &negate{})

	frames := make([][2]float64, 160)
	if n, ok := s.Stream(frames); n != 160 || !ok {
		t.Fatalf("Stream() = %d, %v; must keep streaming past the end", n, ok)
	}

	if !s.ended {
		t.Fatal("streamer did not report the end of the source")
	}

	for i := range 100 {
		want := -c.Data()[0][i]
		if frames[i][0] != want || frames[i][1] != want {
			t.Fatalf("frame %d = %v, want %v on both channels", i, frames[i], want)
		}
	}

	for i := 100; i < 160; i++ {
		if frames[i] != ([2]float64{}) {
			t.Fatalf("frame %d = %v after the end, want silence", i, frames[i])
		}
	}
}

func TestClipStreamerDoesNotAllocate(t *testing.T) {
	c := newTestClip(t, 2, 60000)
	c.Play()

	s := c.Streamer()
	frames := make([][2]float64, 2*clipStreamChunk+100)

	allocs := testing.AllocsPerRun(20, func() {
		if n, ok := s.Stream(frames); n != len(frames) || !ok {
			t.Fatalf("Stream() = %d, %v", n, ok)
		}
	})
	if allocs != 0 {
		t.Fatalf("Stream allocated %v times per run", allocs)
	}
}

func TestClipStreamerSpansChunks(t *testing.T) {
	c := newTestClip(t, 2, 1500)
	c.Play()

	frames := make([][2]float64, 2000)
	if n, ok := c.Streamer().Stream(frames); n != 1500 || !ok {
		t.Fatalf("Stream() = %d, %v, want 1500, true", n, ok)
	}

	for i := range 1500 {
		if frames[i][0] != c.Data()[0][i] || frames[i][1] != c.Data()[1][i] {
			t.Fatalf("frame %d = %v, want clip samples", i, frames[i])
		}
	}
}
