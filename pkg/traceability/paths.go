package traceability

import (
	"container/list"
)

// FindPaths enumerates every simple directed path from startID to endID.
// Each DFS branch carries its own copy of the visited set so sibling branches
// do not interfere. Returns nil when endID is unreachable.
//
// Direction matters here, unlike FindPath: this is the lineage view, walking
// only the declared edge directions. Worst case is exponential on densely
// cross-referenced charters; real graphs are tree-shaped with sparse links.
func FindPaths(g *Graph, startID, endID string) [][]string {
	var paths [][]string
	visited := map[string]bool{startID: true}
	findPathsDFS(g, startID, endID, visited, []string{startID}, &paths)
	return paths
}

func findPathsDFS(g *Graph, current, endID string, visited map[string]bool, path []string, paths *[][]string) {
	if current == endID {
		found := make([]string, len(path))
		copy(found, path)
		*paths = append(*paths, found)
		return
	}

	for _, e := range g.Edges {
		if e.Source != current || visited[e.Target] {
			continue
		}

		// Copy visited per branch: a node excluded on one path may still
		// appear on a sibling path.
		branchVisited := make(map[string]bool, len(visited)+1)
		for k, v := range visited {
			branchVisited[k] = v
		}
		branchVisited[e.Target] = true

		findPathsDFS(g, e.Target, endID, branchVisited, append(path, e.Target), paths)
	}
}

// FindPath returns one shortest path between two nodes using bidirectional
// BFS over the undirected view of the graph: both edge directions are
// traversable. This deliberately differs from FindPaths, which respects edge
// direction; the two serve connectivity probing and lineage display
// respectively. Returns nil when the nodes are not connected at all.
func FindPath(g *Graph, startID, endID string) []string {
	if startID == endID {
		return []string{startID}
	}

	// Forward search from start
	forwardQueue := list.New()
	forwardVisited := map[string]string{startID: startID} // node -> parent
	forwardQueue.PushBack(startID)

	// Backward search from end
	backwardQueue := list.New()
	backwardVisited := map[string]string{endID: endID}
	backwardQueue.PushBack(endID)

	for forwardQueue.Len() > 0 || backwardQueue.Len() > 0 {
		if forwardQueue.Len() > 0 {
			if meeting, ok := expandFrontier(g, forwardQueue, forwardVisited, backwardVisited); ok {
				return reconstructPath(meeting, forwardVisited, backwardVisited)
			}
		}
		if backwardQueue.Len() > 0 {
			if meeting, ok := expandFrontier(g, backwardQueue, backwardVisited, forwardVisited); ok {
				return reconstructPath(meeting, forwardVisited, backwardVisited)
			}
		}
	}

	return nil // No path found
}

// undirectedNeighbors lists every node adjacent to id, ignoring direction.
func undirectedNeighbors(g *Graph, id string) []string {
	var neighbors []string
	for _, e := range g.Edges {
		if e.Source == id {
			neighbors = append(neighbors, e.Target)
		}
		if e.Target == id {
			neighbors = append(neighbors, e.Source)
		}
	}
	return neighbors
}

// expandFrontier expands one BFS level from the queue, reporting the meeting
// node when this search reaches territory the other search has seen.
func expandFrontier(g *Graph, queue *list.List, visited, otherVisited map[string]string) (string, bool) {
	levelSize := queue.Len()
	for i := 0; i < levelSize; i++ {
		currentID := queue.Remove(queue.Front()).(string)

		for _, neighborID := range undirectedNeighbors(g, currentID) {
			if _, found := otherVisited[neighborID]; found {
				visited[neighborID] = currentID
				return neighborID, true
			}
			if _, seen := visited[neighborID]; !seen {
				visited[neighborID] = currentID
				queue.PushBack(neighborID)
			}
		}
	}
	return "", false
}

// reconstructPath splices the two parent chains at the meeting node.
func reconstructPath(meeting string, forwardVisited, backwardVisited map[string]string) []string {
	// Build forward half (start -> meeting)
	forwardPath := make([]string, 0)
	node := meeting
	for node != forwardVisited[node] {
		forwardPath = append(forwardPath, node)
		node = forwardVisited[node]
	}
	forwardPath = append(forwardPath, node)

	for i, j := 0, len(forwardPath)-1; i < j; i, j = i+1, j-1 {
		forwardPath[i], forwardPath[j] = forwardPath[j], forwardPath[i]
	}

	// Build backward half (meeting -> end), excluding the meeting node
	node = backwardVisited[meeting]
	if node == meeting {
		return forwardPath
	}
	backwardPath := make([]string, 0)
	for node != backwardVisited[node] {
		backwardPath = append(backwardPath, node)
		node = backwardVisited[node]
	}
	backwardPath = append(backwardPath, node)

	return append(forwardPath, backwardPath...)
}
