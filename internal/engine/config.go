package engine

import (
	"io"
	"log"

	"github.com/cwbudde/algo-jungle/dsp/core"
	"github.com/cwbudde/algo-jungle/dsp/effects/pitch"
)

// Config holds engine construction settings.
type Config struct {
	// Processing holds the block size and smoothing time. Its sample rate
	// is replaced by the rate of the attached source.
	Processing core.ProcessorConfig
	// MaxDelay sizes the shifter delay lines in seconds.
	MaxDelay float64
	// Logger receives lifecycle events. It is never used on the audio path.
	Logger *log.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the settings used when no options are given.
func DefaultConfig() Config {
	return Config{
		Processing: core.DefaultProcessorConfig(),
		MaxDelay:   pitch.DefaultMaxDelay,
		Logger:     log.New(io.Discard, "", 0),
	}
}

// WithBlockSize sets the processing block size. Non-positive values are ignored.
func WithBlockSize(n int) Option {
	return func(c *Config) {
		core.WithBlockSize(n)(&c.Processing)
	}
}

// WithSmoothingTime sets the smoothing time constant. Negative or
// non-finite values are ignored.
func WithSmoothingTime(seconds float64) Option {
	return func(c *Config) {
		core.WithSmoothingTime(seconds)(&c.Processing)
	}
}

// WithMaxDelay sets the delay line length in seconds. Non-positive values
// are ignored.
func WithMaxDelay(seconds float64) Option {
	return func(c *Config) {
		if seconds > 0 && core.IsFinite(seconds) {
			c.MaxDelay = seconds
		}
	}
}

// WithLogger sets the lifecycle logger. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

func applyOptions(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
