package core

// Processing defaults shared by the engine and its processors.
const (
	DefaultSampleRate    = 48000
	DefaultBlockSize     = 128
	DefaultSmoothingTime = 0.01
)

// ProcessorConfig defines common block-processing settings.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
	// SmoothingTime is the exponential time constant in seconds used for
	// continuous parameters (gains, modulation depth).
	SmoothingTime float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the defaults used for real-time processing.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:    DefaultSampleRate,
		BlockSize:     DefaultBlockSize,
		SmoothingTime: DefaultSmoothingTime,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && IsFinite(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the largest block processed in one pass.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithSmoothingTime sets the smoothing time constant in seconds. Zero disables smoothing.
func WithSmoothingTime(seconds float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if seconds >= 0 && IsFinite(seconds) {
			cfg.SmoothingTime = seconds
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
