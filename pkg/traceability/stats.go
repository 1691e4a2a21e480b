package traceability

// GraphStats aggregates node and edge counts for reporting and dashboards.
type GraphStats struct {
	TotalNodes   int            `json:"totalNodes"`
	TotalEdges   int            `json:"totalEdges"`
	NodesByLayer map[string]int `json:"nodesByLayer"`
	EdgesByType  map[string]int `json:"edgesByType"`
}

// Stats computes aggregate counts over the graph. The per-layer node counts
// always sum to TotalNodes, and per-type edge counts to TotalEdges.
func Stats(g *Graph) GraphStats {
	stats := GraphStats{
		TotalNodes:   len(g.Nodes),
		TotalEdges:   len(g.Edges),
		NodesByLayer: make(map[string]int),
		EdgesByType:  make(map[string]int),
	}
	for _, n := range g.Nodes {
		stats.NodesByLayer[n.Layer]++
	}
	for _, e := range g.Edges {
		stats.EdgesByType[e.Type]++
	}
	return stats
}
