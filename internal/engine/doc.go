// Package engine attaches the pitch and equalizer pipeline to a media source
// and exposes the control surface used by hosts.
//
// Each source channel runs its own effectchain graph:
//
//	_input -> in -> eq -> pitch -> wet -+
//	                  \                 +-> mix -> out -> _output
//	                   +---------> dry -+
//
// The wet and dry switches share one selector owned by the Router, so
// exactly one of the two paths is audible. Control methods serialize on a
// mutex and only write atomics; Process runs lock free on the audio
// goroutine.
package engine
