package traceability

// arena accumulates nodes and edges during a single build pass. Nodes live in
// an append-only slice with an ID-to-index map so get-or-create is O(1) and an
// ID referenced before its own expansion is never allocated twice.
type arena struct {
	nodes []Node
	edges []Edge
	index map[string]int // node ID -> position in nodes
}

func newArena() *arena {
	return &arena{
		nodes: make([]Node, 0, 64),
		edges: make([]Edge, 0, 64),
		index: make(map[string]int),
	}
}

// addNode appends a node unless its ID is already present. When the ID exists
// the original node wins; this keeps node creation idempotent for entities
// that are referenced from multiple places before being expanded.
func (a *arena) addNode(n Node) string {
	if _, exists := a.index[n.ID]; exists {
		return n.ID
	}
	a.index[n.ID] = len(a.nodes)
	a.nodes = append(a.nodes, n)
	return n.ID
}

// addEdge records a directed edge. Targets are not checked against the node
// set: an edge may point at an ID that never becomes a node.
func (a *arena) addEdge(source, target, edgeType string, strength int, metadata string) {
	a.edges = append(a.edges, Edge{
		Source:   source,
		Target:   target,
		Type:     edgeType,
		Strength: strength,
		Metadata: metadata,
	})
}

func (a *arena) graph() *Graph {
	return &Graph{Nodes: a.nodes, Edges: a.edges}
}
