package host

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/youpy/go-wav"

	"github.com/cwbudde/algo-jungle/dsp/core"
)

const (
	wavFormatPCM     = 1
	wavBitsPerSample = 16
	wavMaxChannels   = 2
	wavReadFrames    = 4096
)

// ErrWAVChannels is returned for WAV data with more channels than supported.
var ErrWAVChannels = errors.New("host: wav supports 1 or 2 channels")

// WAVReader is the input DecodeWAV needs: a reader that can also be read at
// offsets, such as *os.File or *bytes.Reader.
type WAVReader interface {
	io.Reader
	io.ReaderAt
}

// LoadWAV reads a PCM WAV file into a Clip identified by its absolute path.
func LoadWAV(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("host: open wav: %w", err)
	}
	defer f.Close()

	id, err := filepath.Abs(path)
	if err != nil {
		id = path
	}

	return DecodeWAV(f, id)
}

// DecodeWAV reads PCM WAV data into a Clip.
func DecodeWAV(r WAVReader, id string) (*Clip, error) {
	wr := wav.NewReader(r)

	format, err := wr.Format()
	if err != nil {
		return nil, fmt.Errorf("host: wav format: %w", err)
	}

	if format.AudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("host: unsupported wav encoding %d", format.AudioFormat)
	}

	channels := int(format.NumChannels)
	if channels < 1 || channels > wavMaxChannels {
		return nil, fmt.Errorf("%w: got %d", ErrWAVChannels, channels)
	}

	scale, offset := pcmScale(int(format.BitsPerSample))
	data := make([][]float64, channels)

	for {
		samples, err := wr.ReadSamples(wavReadFrames)
		for _, s := range samples {
			for ch := range data {
				data[ch] = append(data[ch], (float64(s.Values[ch])-offset)*scale)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("host: read wav samples: %w", err)
		}

		if len(samples) == 0 {
			break
		}
	}

	return NewClip(id, float64(format.SampleRate), data)
}

// pcmScale maps integer PCM of the given width to [-1, 1). 8-bit PCM is
// unsigned.
func pcmScale(bits int) (scale, offset float64) {
	if bits == 8 {
		return 1.0 / 128, 128
	}

	return 1 / float64(int64(1)<<(bits-1)), 0
}

// SaveWAV writes channels as 16-bit PCM.
func SaveWAV(path string, sampleRate float64, channels [][]float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("host: create wav: %w", err)
	}

	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("host: close wav: %w", cerr)
		}
	}()

	return EncodeWAV(f, sampleRate, channels)
}

// EncodeWAV writes channels as 16-bit PCM to w. Samples are clipped to
// [-1, 1].
func EncodeWAV(w io.Writer, sampleRate float64, channels [][]float64) error {
	if len(channels) < 1 || len(channels) > wavMaxChannels {
		return fmt.Errorf("%w: got %d", ErrWAVChannels, len(channels))
	}

	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("host: sample rate must be > 0: %f", sampleRate)
	}

	frames := len(channels[0])
	for ch := range channels {
		if len(channels[ch]) != frames {
			return fmt.Errorf("host: channel %d has %d frames, want %d", ch, len(channels[ch]), frames)
		}
	}

	ww := wav.NewWriter(w, uint32(frames), uint16(len(channels)), uint32(sampleRate), wavBitsPerSample)

	const full = 1<<(wavBitsPerSample-1) - 1

	samples := make([]wav.Sample, 0, wavReadFrames)
	for start := 0; start < frames; start += wavReadFrames {
		end := min(start+wavReadFrames, frames)

		samples = samples[:0]
		for i := start; i < end; i++ {
			var s wav.Sample
			for ch := range channels {
				s.Values[ch] = int(math.Round(core.Clamp(channels[ch][i], -1, 1) * full))
			}

			samples = append(samples, s)
		}

		if err := ww.WriteSamples(samples); err != nil {
			return fmt.Errorf("host: write wav samples: %w", err)
		}
	}

	return nil
}
