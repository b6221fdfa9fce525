package param

import "sync/atomic"

// Selector is a hard on/off switch.
//
// Set may be called from any goroutine. The processing side calls Latch
// once at the start of a block and reads Latched for the rest of it, so
// every node sharing the selector sees the same position within a block.
type Selector struct {
	on      atomic.Bool
	latched bool
}

// NewSelector returns a selector in position on.
func NewSelector(on bool) *Selector {
	s := &Selector{latched: on}
	s.on.Store(on)

	return s
}

// Set moves the switch.
func (s *Selector) Set(on bool) {
	s.on.Store(on)
}

// On returns the most recently set position.
func (s *Selector) On() bool {
	return s.on.Load()
}

// Latch captures the current position for the following block.
func (s *Selector) Latch() bool {
	s.latched = s.on.Load()
	return s.latched
}

// Latched returns the position captured by the last Latch.
func (s *Selector) Latched() bool {
	return s.latched
}
