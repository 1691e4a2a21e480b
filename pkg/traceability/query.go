package traceability

// Query utilities are pure functions over a Graph value: no mutation, no
// side effects, safe for concurrent use. Lookups are linear scans, which is
// fine at the expected scale of low hundreds of nodes.

// GetNodeByID returns the node with the given ID, or nil if no such node
// exists. Absence is not an error: edges may legitimately reference IDs
// (dotted cross-layer paths) that never became nodes.
func GetNodeByID(g *Graph, id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// GetConnectedEdges returns every edge touching the node, either direction.
func GetConnectedEdges(g *Graph, id string) []Edge {
	var edges []Edge
	for _, e := range g.Edges {
		if e.Source == id || e.Target == id {
			edges = append(edges, e)
		}
	}
	return edges
}

// GetOutgoingEdges returns every edge whose source is the node.
func GetOutgoingEdges(g *Graph, id string) []Edge {
	var edges []Edge
	for _, e := range g.Edges {
		if e.Source == id {
			edges = append(edges, e)
		}
	}
	return edges
}

// GetIncomingEdges returns every edge whose target is the node.
func GetIncomingEdges(g *Graph, id string) []Edge {
	var edges []Edge
	for _, e := range g.Edges {
		if e.Target == id {
			edges = append(edges, e)
		}
	}
	return edges
}

// TraverseDownward returns every node reachable from startID by following
// outgoing edges, including the start node itself when it exists. Depth-first
// with a visited set, so it terminates on cyclic graphs and never duplicates
// a node reachable along multiple paths.
func TraverseDownward(g *Graph, startID string) []Node {
	return collectNodes(g, TraverseDown(g, startID))
}

// TraverseUpward is TraverseDownward against incoming edges: every node that
// can reach startID.
func TraverseUpward(g *Graph, startID string) []Node {
	return collectNodes(g, TraverseUp(g, startID))
}

// TraverseDown is the ID-list variant of TraverseDownward. The start ID is
// always included, even when no node carries it.
func TraverseDown(g *Graph, startID string) []string {
	visited := make(map[string]bool)
	var order []string
	traverse(g, startID, visited, &order, func(e Edge, id string) (string, bool) {
		return e.Target, e.Source == id
	})
	return order
}

// TraverseUp is the ID-list variant of TraverseUpward.
func TraverseUp(g *Graph, startID string) []string {
	visited := make(map[string]bool)
	var order []string
	traverse(g, startID, visited, &order, func(e Edge, id string) (string, bool) {
		return e.Source, e.Target == id
	})
	return order
}

// traverse is the shared DFS. next reports, for an edge and the current node,
// the neighbor to follow and whether the edge applies in this direction.
func traverse(g *Graph, id string, visited map[string]bool, order *[]string, next func(Edge, string) (string, bool)) {
	if visited[id] {
		return
	}
	visited[id] = true
	*order = append(*order, id)

	for _, e := range g.Edges {
		if neighbor, ok := next(e, id); ok {
			traverse(g, neighbor, visited, order, next)
		}
	}
}

// collectNodes maps traversal IDs back to nodes, dropping IDs that never
// materialized as nodes (unresolved edge targets are leaves, not errors).
func collectNodes(g *Graph, ids []string) []Node {
	var nodes []Node
	for _, id := range ids {
		if n := GetNodeByID(g, id); n != nil {
			nodes = append(nodes, *n)
		}
	}
	return nodes
}

// NodesByLayer returns all nodes owned by the exact layer name.
func NodesByLayer(g *Graph, layer string) []Node {
	var nodes []Node
	for _, n := range g.Nodes {
		if n.Layer == layer {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
