package effectchain

import "github.com/cwbudde/algo-jungle/dsp/param"

// Context provides environmental information that node runtimes need. It is
// fixed for the lifetime of a compiled Chain.
type Context struct {
	SampleRate float64
	// BlockSize is the largest block processed in one pass; longer blocks
	// are split.
	BlockSize int
	// SmoothingTime is the time constant in seconds for continuous parameters.
	SmoothingTime float64
	// Selectors are the named switches that "switch" nodes can refer to.
	Selectors map[string]*param.Selector
}
