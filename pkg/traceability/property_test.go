package traceability

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// graphFromPairs builds a 10-node graph whose edges are taken pairwise from
// the generated int slice. Arbitrary values produce arbitrary topologies,
// cycles and self-loops included.
func graphFromPairs(pairs []int) *Graph {
	g := &Graph{}
	for i := 0; i < 10; i++ {
		g.Nodes = append(g.Nodes, Node{ID: fmt.Sprintf("n%d", i), Layer: "policy-charter"})
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		g.Edges = append(g.Edges, Edge{
			Source: fmt.Sprintf("n%d", pairs[i]%10),
			Target: fmt.Sprintf("n%d", pairs[i+1]%10),
			Type:   EdgeDrives,
		})
	}
	return g
}

// TestGraphQueryInvariants uses property-based testing to verify the query
// utilities hold up on arbitrary topologies, including dense cyclic ones.
func TestGraphQueryInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property 1: traversal terminates and never yields duplicates
	properties.Property("traversal yields unique IDs on any topology", prop.ForAll(
		func(pairs []int) bool {
			g := graphFromPairs(pairs)

			for i := 0; i < 10; i++ {
				start := fmt.Sprintf("n%d", i)
				for _, ids := range [][]string{TraverseDown(g, start), TraverseUp(g, start)} {
					seen := make(map[string]bool)
					for _, id := range ids {
						if seen[id] {
							return false
						}
						seen[id] = true
					}
					if !seen[start] {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 99)),
	))

	// Property 2: stats totals always match the raw slices
	properties.Property("stats counts are consistent", prop.ForAll(
		func(pairs []int) bool {
			g := graphFromPairs(pairs)
			stats := Stats(g)

			if stats.TotalNodes != len(g.Nodes) || stats.TotalEdges != len(g.Edges) {
				return false
			}
			nodeSum := 0
			for _, c := range stats.NodesByLayer {
				nodeSum += c
			}
			edgeSum := 0
			for _, c := range stats.EdgesByType {
				edgeSum += c
			}
			return nodeSum == stats.TotalNodes && edgeSum == stats.TotalEdges
		},
		gen.SliceOf(gen.IntRange(0, 99)),
	))

	// Property 3: undirected shortest-path connectivity is symmetric
	properties.Property("FindPath connectivity is symmetric", prop.ForAll(
		func(pairs []int, a, b int) bool {
			g := graphFromPairs(pairs)
			from := fmt.Sprintf("n%d", a%10)
			to := fmt.Sprintf("n%d", b%10)

			forward := FindPath(g, from, to)
			backward := FindPath(g, to, from)
			return (forward == nil) == (backward == nil)
		},
		gen.SliceOf(gen.IntRange(0, 99)),
		gen.IntRange(0, 9),
		gen.IntRange(0, 9),
	))

	// Property 4: every directed path found is a genuine edge walk.
	// Edge count is capped: all-simple-paths enumeration is exponential on
	// dense graphs.
	properties.Property("FindPaths results follow declared edges", prop.ForAll(
		func(pairs []int, a, b int) bool {
			g := graphFromPairs(pairs)
			from := fmt.Sprintf("n%d", a%10)
			to := fmt.Sprintf("n%d", b%10)

			edgeSet := make(map[string]bool)
			for _, e := range g.Edges {
				edgeSet[e.Source+"->"+e.Target] = true
			}

			for _, path := range FindPaths(g, from, to) {
				if path[0] != from || path[len(path)-1] != to {
					return false
				}
				for i := 0; i+1 < len(path); i++ {
					if !edgeSet[path[i]+"->"+path[i+1]] {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOfN(16, gen.IntRange(0, 99)),
		gen.IntRange(0, 9),
		gen.IntRange(0, 9),
	))

	properties.TestingRun(t)
}
