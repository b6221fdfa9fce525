package host

import (
	"github.com/gopxl/beep"
)

// Processor transforms one block of audio in place, one slice per channel.
// engine.Engine implements it.
type Processor interface {
	Process(channels [][]float64) bool
}

// processStreamer feeds a beep stream through a Processor. It never ends:
// once the source is exhausted it reports ended and streams silence, so
// playback can resume after a seek.
type processStreamer struct {
	src   beep.Streamer
	proc  Processor
	bufs  [][]float64
	views [][]float64
	ended bool
}

// newProcessStreamer processes channels (1 or 2) of src in blocks of at
// most blockSize frames. Mono is taken from the left channel and written
// to both.
func newProcessStreamer(src beep.Streamer, channels, blockSize int, proc Processor) *processStreamer {
	channels = min(max(channels, 1), 2)

	bufs := make([][]float64, channels)
	for ch := range bufs {
		bufs[ch] = make([]float64, blockSize)
	}

	return &processStreamer{src: src, proc: proc, bufs: bufs, views: make([][]float64, channels)}
}

func (s *processStreamer) Stream(samples [][2]float64) (int, bool) {
	total := len(samples)

	for len(samples) > 0 {
		n := min(len(samples), len(s.bufs[0]))
		block := samples[:n]

		got := 0
		if !s.ended {
			var ok bool

			got, ok = s.src.Stream(block)
			if !ok || got < n {
				s.ended = true
			}
		}

		clear(block[got:])
		s.process(block)

		samples = samples[n:]
	}

	return total, true
}

func (s *processStreamer) process(frames [][2]float64) {
	n := len(frames)
	for ch := range s.views {
		s.views[ch] = s.bufs[ch][:n]
	}

	for i, f := range frames {
		for ch, v := range s.views {
			v[i] = f[ch]
		}
	}

	if s.proc != nil {
		s.proc.Process(s.views)
	}

	last := s.views[len(s.views)-1]
	for i := range frames {
		frames[i][0] = s.views[0][i]
		frames[i][1] = last[i]
	}
}

func (s *processStreamer) Err() error {
	return s.src.Err()
}

// clipStreamChunk is the number of frames a clipStreamer reads per pass.
const clipStreamChunk = 512

// clipStreamer streams a Clip's samples for beep, honoring its pause state.
// Its buffers are allocated once, so Stream does not allocate.
type clipStreamer struct {
	clip  *Clip
	bufs  [2][]float64
	views [][]float64
}

// Streamer returns a beep source reading from the clip playhead. Extra
// channels beyond two are dropped.
func (c *Clip) Streamer() beep.Streamer {
	s := &clipStreamer{clip: c, views: make([][]float64, 2)}
	for ch := range s.bufs {
		s.bufs[ch] = make([]float64, clipStreamChunk)
	}

	return s
}

func (s *clipStreamer) Stream(samples [][2]float64) (int, bool) {
	total := 0

	for len(samples) > 0 {
		n := min(len(samples), clipStreamChunk)
		for ch := range s.views {
			s.views[ch] = s.bufs[ch][:n]
		}

		got := s.clip.Read(s.views)
		for i := range got {
			samples[i] = [2]float64{s.views[0][i], s.views[1][i]}
		}

		total += got
		if got < n {
			break
		}

		samples = samples[n:]
	}

	return total, total > 0
}

func (s *clipStreamer) Err() error { return nil }
