// Package effectchain runs a fixed graph of block processors.
//
// A graph is described by a [GraphSpec] (nodes plus directed connections,
// with reserved "_input" and "_output" nodes) and compiled once by
// [Chain.Load]: node runtimes are created through a [Registry], buffers are
// preallocated and a topological order is computed with Kahn's algorithm.
// The topology never changes afterwards; a new topology needs a new Chain.
//
// Every node receives the sum of its parents' outputs and processes it in
// place. Fan-out is expressed by several connections leaving one node.
//
// Built-in node types:
//
//   - "gain":   smoothed scalar gain, parameter "gain"
//   - "switch": hard 0/1 gate driven by a shared [param.Selector]
//   - "sum":    pass-through mixing point
//   - "eq10":   10-band peaking equalizer, parameters "band0".."band9"
//   - "jungle": granular pitch shifter, parameter "offset"
package effectchain
