// Package param provides the control-to-audio parameter primitives used by
// the engine.
//
// Control code writes targets from any goroutine; block processors read
// them without locks:
//
//   - [Smoothed]: a continuous value approached exponentially per sample
//   - [Selector]: a hard 0/1 switch latched once per processing block
package param
