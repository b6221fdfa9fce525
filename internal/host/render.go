package host

import (
	"context"
	"errors"

	"github.com/cwbudde/algo-jungle/dsp/core"
	"github.com/cwbudde/algo-jungle/internal/engine"
)

// ErrNotReady is returned by Render when the engine could not attach to
// the clip.
var ErrNotReady = errors.New("host: engine not ready")

// Render plays clip from its playhead to the end through e in blocks of
// blockSize frames and returns the processed channels. e must locate clip.
func Render(ctx context.Context, e *engine.Engine, clip *Clip, blockSize int) ([][]float64, error) {
	if !e.Initialize(ctx) {
		return nil, ErrNotReady
	}

	if blockSize <= 0 {
		blockSize = core.DefaultBlockSize
	}

	if err := clip.Play(); err != nil {
		return nil, err
	}

	out := make([][]float64, clip.Channels())
	for ch := range out {
		out[ch] = make([]float64, 0, clip.Frames())
	}

	block := make([][]float64, clip.Channels())
	for ch := range block {
		block[ch] = make([]float64, blockSize)
	}

	views := make([][]float64, len(block))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n := clip.Read(block)
		if n == 0 {
			break
		}

		for ch := range block {
			views[ch] = block[ch][:n]
		}

		e.Process(views)

		for ch := range out {
			out[ch] = append(out[ch], views[ch]...)
		}
	}

	return out, nil
}
