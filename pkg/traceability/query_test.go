package traceability

import (
	"testing"
)

// chainGraph builds A -> B -> C with an extra D -> B cross link.
func chainGraph() *Graph {
	return &Graph{
		Nodes: []Node{
			{ID: "A", Layer: "business"},
			{ID: "B", Layer: "north-star"},
			{ID: "C", Layer: "north-star"},
			{ID: "D", Layer: "policy-charter"},
		},
		Edges: []Edge{
			{Source: "A", Target: "B", Type: EdgeContains, Strength: 10},
			{Source: "B", Target: "C", Type: EdgeContains, Strength: 10},
			{Source: "D", Target: "B", Type: EdgeAddresses, Strength: 8},
		},
	}
}

// cycleGraph builds X -> Y -> Z -> X.
func cycleGraph() *Graph {
	return &Graph{
		Nodes: []Node{{ID: "X"}, {ID: "Y"}, {ID: "Z"}},
		Edges: []Edge{
			{Source: "X", Target: "Y", Type: EdgeDrives},
			{Source: "Y", Target: "Z", Type: EdgeDrives},
			{Source: "Z", Target: "X", Type: EdgeDrives},
		},
	}
}

func TestGetNodeByID(t *testing.T) {
	g := chainGraph()

	if n := GetNodeByID(g, "B"); n == nil || n.Layer != "north-star" {
		t.Errorf("Expected node B in layer north-star, got %+v", n)
	}
	if n := GetNodeByID(g, "nope"); n != nil {
		t.Errorf("Expected nil for unknown ID, got %+v", n)
	}
}

func TestEdgeLookups(t *testing.T) {
	g := chainGraph()

	if got := len(GetOutgoingEdges(g, "A")); got != 1 {
		t.Errorf("Expected 1 outgoing edge from A, got %d", got)
	}
	if got := len(GetIncomingEdges(g, "B")); got != 2 {
		t.Errorf("Expected 2 incoming edges to B, got %d", got)
	}
	if got := len(GetConnectedEdges(g, "B")); got != 3 {
		t.Errorf("Expected 3 connected edges for B, got %d", got)
	}
	if got := len(GetConnectedEdges(g, "nope")); got != 0 {
		t.Errorf("Expected no edges for unknown ID, got %d", got)
	}
}

func TestTraverseDownward(t *testing.T) {
	g := chainGraph()

	nodes := TraverseDownward(g, "A")
	if len(nodes) != 3 {
		t.Fatalf("Expected 3 nodes downward from A, got %d", len(nodes))
	}
	if nodes[0].ID != "A" {
		t.Errorf("Expected start node first, got %q", nodes[0].ID)
	}
}

func TestTraverseUpward(t *testing.T) {
	g := chainGraph()

	ids := TraverseUp(g, "C")
	want := map[string]bool{"C": true, "B": true, "A": true, "D": true}
	if len(ids) != len(want) {
		t.Fatalf("Expected %d IDs upward from C, got %v", len(want), ids)
	}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("Unexpected ID %q in upward traversal", id)
		}
	}
}

// TestTraverse_UnknownStart verifies traversal from an ID with no node
// returns just that ID rather than failing.
func TestTraverse_UnknownStart(t *testing.T) {
	g := chainGraph()

	ids := TraverseDown(g, "ghost")
	if len(ids) != 1 || ids[0] != "ghost" {
		t.Errorf("Expected [ghost], got %v", ids)
	}
	// The node-list variant drops IDs with no node.
	if nodes := TraverseDownward(g, "ghost"); len(nodes) != 0 {
		t.Errorf("Expected no nodes, got %d", len(nodes))
	}
}

// TestTraverse_CycleSafety verifies traversals terminate on cyclic graphs and
// do not duplicate nodes.
func TestTraverse_CycleSafety(t *testing.T) {
	g := cycleGraph()

	for _, fn := range []func(*Graph, string) []string{TraverseDown, TraverseUp} {
		ids := fn(g, "X")
		if len(ids) != 3 {
			t.Errorf("Expected 3 IDs, got %v", ids)
		}
		seen := make(map[string]bool)
		for _, id := range ids {
			if seen[id] {
				t.Errorf("Duplicate ID %q", id)
			}
			seen[id] = true
		}
	}
}

// TestTraversalClosure verifies every node reachable downward from business
// can reach business upward.
func TestTraversalClosure(t *testing.T) {
	g := chainGraph()

	for _, n := range TraverseDownward(g, "A") {
		up := TraverseUp(g, n.ID)
		found := false
		for _, id := range up {
			if id == "A" {
				found = true
			}
		}
		if !found {
			t.Errorf("Node %q cannot reach A upward", n.ID)
		}
	}
}

func TestNodesByLayer(t *testing.T) {
	g := chainGraph()

	if got := len(NodesByLayer(g, "north-star")); got != 2 {
		t.Errorf("Expected 2 north-star nodes, got %d", got)
	}
	if got := len(NodesByLayer(g, "unknown")); got != 0 {
		t.Errorf("Expected 0 nodes for unknown layer, got %d", got)
	}
}

func TestStatsConsistency(t *testing.T) {
	g := chainGraph()

	stats := Stats(g)
	if stats.TotalNodes != len(g.Nodes) {
		t.Errorf("TotalNodes %d != node count %d", stats.TotalNodes, len(g.Nodes))
	}
	if stats.TotalEdges != len(g.Edges) {
		t.Errorf("TotalEdges %d != edge count %d", stats.TotalEdges, len(g.Edges))
	}

	sum := 0
	for _, count := range stats.NodesByLayer {
		sum += count
	}
	if sum != stats.TotalNodes {
		t.Errorf("NodesByLayer sums to %d, expected %d", sum, stats.TotalNodes)
	}

	if stats.EdgesByType[EdgeContains] != 2 {
		t.Errorf("Expected 2 contains edges, got %d", stats.EdgesByType[EdgeContains])
	}
}

func TestNodeColor(t *testing.T) {
	if NodeColor("business") == NodeColor("north-star") {
		t.Error("Expected distinct colors per layer")
	}
	if NodeColor("not-a-layer") != defaultNodeColor {
		t.Error("Expected default gray for unknown layers")
	}
}
