package effectchain

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// InputNodeID is the reserved node ID for the chain input.
	InputNodeID = "_input"
	// OutputNodeID is the reserved node ID for the chain output.
	OutputNodeID = "_output"
)

// Built-in node types.
const (
	NodeTypeGain      = "gain"
	NodeTypeSwitch    = "switch"
	NodeTypeSum       = "sum"
	NodeTypeEqualizer = "eq10"
	NodeTypeJungle    = "jungle"
)

var (
	// ErrCycle is returned for graphs whose connections form a cycle.
	ErrCycle = errors.New("effectchain: graph contains cycle")
	// ErrMissingIO is returned for graphs without the reserved I/O nodes.
	ErrMissingIO = errors.New("effectchain: graph needs _input and _output nodes")
	// ErrUnknownNode is returned for connections naming undeclared nodes.
	ErrUnknownNode = errors.New("effectchain: unknown node")
)

// NodeSpec is a JSON-serializable node in the graph.
type NodeSpec struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Bypassed bool           `json:"bypassed,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
}

// Connection is a JSON-serializable directed edge between two nodes.
type Connection struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GraphSpec is the root JSON structure describing a graph.
type GraphSpec struct {
	Nodes       []NodeSpec   `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// Connect appends an edge and returns the spec for chaining.
func (s GraphSpec) Connect(from, to string) GraphSpec {
	s.Connections = append(s.Connections, Connection{From: from, To: to})
	return s
}

// ParseGraph decodes a JSON graph description.
func ParseGraph(raw string) (GraphSpec, error) {
	var spec GraphSpec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return GraphSpec{}, fmt.Errorf("invalid chain graph json: %w", err)
	}

	return spec, nil
}

// compiledGraph holds the adjacency and a topologically sorted order.
type compiledGraph struct {
	Nodes    map[string]Params
	Incoming map[string][]string
	Order    []string
}

// compileGraph validates spec and sorts it with Kahn's algorithm. Ties are
// broken by declaration order so the result is deterministic.
//
//nolint:cyclop
func compileGraph(spec GraphSpec) (*compiledGraph, error) {
	nodes := make(map[string]Params, len(spec.Nodes))
	declared := make([]string, 0, len(spec.Nodes))

	for _, n := range spec.Nodes {
		if n.ID == "" {
			return nil, errors.New("effectchain: node without id")
		}

		if _, dup := nodes[n.ID]; dup {
			return nil, fmt.Errorf("effectchain: duplicate node id %q", n.ID)
		}

		typ := n.Type
		if n.ID == InputNodeID || n.ID == OutputNodeID {
			typ = n.ID
		}

		if typ == "" {
			return nil, fmt.Errorf("effectchain: node %q without type", n.ID)
		}

		num, str := parseNodeParams(n.Params)
		nodes[n.ID] = Params{ID: n.ID, Type: typ, Bypassed: n.Bypassed, Num: num, Str: str}
		declared = append(declared, n.ID)
	}

	if _, ok := nodes[InputNodeID]; !ok {
		return nil, ErrMissingIO
	}

	if _, ok := nodes[OutputNodeID]; !ok {
		return nil, ErrMissingIO
	}

	incoming := make(map[string][]string, len(nodes))
	outgoing := make(map[string][]string, len(nodes))
	indegree := make(map[string]int, len(nodes))

	for _, c := range spec.Connections {
		if _, ok := nodes[c.From]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNode, c.From)
		}

		if _, ok := nodes[c.To]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNode, c.To)
		}

		if c.To == InputNodeID || c.From == OutputNodeID {
			return nil, fmt.Errorf("effectchain: invalid connection %s -> %s", c.From, c.To)
		}

		outgoing[c.From] = append(outgoing[c.From], c.To)
		incoming[c.To] = append(incoming[c.To], c.From)
		indegree[c.To]++
	}

	queue := make([]string, 0, len(nodes))
	for _, id := range declared {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		order = append(order, id)
		for _, to := range outgoing[id] {
			indegree[to]--
			if indegree[to] == 0 {
				queue = append(queue, to)
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, ErrCycle
	}

	return &compiledGraph{Nodes: nodes, Incoming: incoming, Order: order}, nil
}

// parseNodeParams extracts numeric and string parameters from decoded JSON params.
func parseNodeParams(raw map[string]any) (map[string]float64, map[string]string) {
	num := map[string]float64{}
	str := map[string]string{}

	for k, v := range raw {
		switch t := v.(type) {
		case float64:
			num[k] = t
		case float32:
			num[k] = float64(t)
		case int:
			num[k] = float64(t)
		case int64:
			num[k] = float64(t)
		case string:
			str[k] = t
		case bool:
			if t {
				num[k] = 1
			} else {
				num[k] = 0
			}
		}
	}

	return num, str
}

// isStructuralNodeType returns true for the reserved I/O nodes.
func isStructuralNodeType(nodeType string) bool {
	return nodeType == InputNodeID || nodeType == OutputNodeID
}
