package effectchain

// Runtime is the per-node processing and configuration contract.
//
// Configure is called once while the chain is loaded. Process runs on the
// audio goroutine and must neither allocate nor block.
type Runtime interface {
	Configure(ctx Context, params Params) error
	Process(block []float64)
}

// ParameterSetter is an optional interface for runtimes with parameters
// that may change while the chain runs. SetParameter may be called
// concurrently with Process.
type ParameterSetter interface {
	SetParameter(name string, value float64) error
}

// Releaser is an optional interface for runtimes holding large buffers.
type Releaser interface {
	Release()
}
