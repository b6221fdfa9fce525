package effectchain

import (
	"errors"
	"slices"
	"testing"
)

func TestCompileGraphTopologicalOrder(t *testing.T) {
	spec := withIO(
		NodeSpec{ID: "sum", Type: NodeTypeSum},
		NodeSpec{ID: "b", Type: "add"},
		NodeSpec{ID: "a", Type: "add"},
	).
		Connect(InputNodeID, "a").
		Connect("a", "b").
		Connect("a", "sum").
		Connect("b", "sum").
		Connect("sum", OutputNodeID)

	g, err := compileGraph(spec)
	if err != nil {
		t.Fatal(err)
	}

	pos := map[string]int{}
	for i, id := range g.Order {
		pos[id] = i
	}

	for _, c := range spec.Connections {
		if pos[c.From] >= pos[c.To] {
			t.Fatalf("edge %s -> %s violates order %v", c.From, c.To, g.Order)
		}
	}
}

func TestCompileGraphErrors(t *testing.T) {
	tests := []struct {
		name string
		spec GraphSpec
		want error
	}{
		{
			name: "missing output",
			spec: GraphSpec{Nodes: []NodeSpec{{ID: InputNodeID}}},
			want: ErrMissingIO,
		},
		{
			name: "cycle",
			spec: withIO(NodeSpec{ID: "a", Type: "add"}, NodeSpec{ID: "b", Type: "add"}).
				Connect(InputNodeID, "a").Connect("a", "b").Connect("b", "a").Connect("b", OutputNodeID),
			want: ErrCycle,
		},
		{
			name: "unknown node",
			spec: withIO().Connect(InputNodeID, "ghost"),
			want: ErrUnknownNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := compileGraph(tt.spec); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCompileGraphRejectsMalformedNodes(t *testing.T) {
	specs := []GraphSpec{
		withIO(NodeSpec{ID: "", Type: "add"}),
		withIO(NodeSpec{ID: "a", Type: ""}),
		withIO(NodeSpec{ID: "a", Type: "add"}, NodeSpec{ID: "a", Type: "add"}),
		withIO().Connect(OutputNodeID, InputNodeID),
	}

	for i, spec := range specs {
		if _, err := compileGraph(spec); err == nil {
			t.Fatalf("spec %d: expected error", i)
		}
	}
}

func TestParseGraph(t *testing.T) {
	raw := `{
		"nodes": [
			{"id": "_input", "type": "_input"},
			{"id": "g", "type": "gain", "params": {"gain": 0.5}},
			{"id": "_output", "type": "_output"}
		],
		"connections": [
			{"from": "_input", "to": "g"},
			{"from": "g", "to": "_output"}
		]
	}`

	spec, err := ParseGraph(raw)
	if err != nil {
		t.Fatal(err)
	}

	g, err := compileGraph(spec)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(g.Order, []string{InputNodeID, "g", OutputNodeID}) {
		t.Fatalf("order = %v", g.Order)
	}

	if got := g.Nodes["g"].GetNum("gain", 1); got != 0.5 {
		t.Fatalf("gain param = %v, want 0.5", got)
	}

	if _, err := ParseGraph("{"); err == nil {
		t.Fatal("expected error for invalid json")
	}
}
