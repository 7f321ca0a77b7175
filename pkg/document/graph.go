package document

import "github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"

// Cycle is a detected cycle as a sequence of node indices.
type Cycle []grapheditor.NodeIndex

// adjacency builds source -> dest lists, ignoring links with ends outside
// [0, n).
func adjacency(n int, links []grapheditor.Link) [][]int {
	adj := make([][]int, n)
	for _, l := range links {
		s, d := int(l.SourceNode), int(l.DestNode)
		if s < 0 || s >= n || d < 0 || d >= n {
			continue
		}
		adj[s] = append(adj[s], d)
	}
	return adj
}

// reachable reports whether to can be reached from from. A node reaches
// itself.
func reachable(adj [][]int, from, to int) bool {
	if from < 0 || from >= len(adj) || to < 0 || to >= len(adj) {
		return false
	}
	if from == to {
		return true
	}
	visited := make([]bool, len(adj))
	visited[from] = true
	stack := []int{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range adj[n] {
			if next == to {
				return true
			}
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// detectCycles finds cycles using DFS with three-color marking:
//   - white: unvisited
//   - gray: on the current DFS path
//   - black: all descendants explored
//
// An edge into a gray node is a back edge and closes a cycle.
func detectCycles(adj [][]int) []Cycle {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(adj))
	parent := make([]int, len(adj))
	var cycles []Cycle

	var visit func(n int)
	visit = func(n int) {
		color[n] = gray
		for _, next := range adj[n] {
			switch color[next] {
			case white:
				parent[next] = n
				visit(next)
			case gray:
				cycles = append(cycles, extractCycle(next, n, parent))
			}
			// black: forward or cross edge, no cycle
		}
		color[n] = black
	}

	for n := range adj {
		if color[n] == white {
			parent[n] = -1
			visit(n)
		}
	}
	return cycles
}

// extractCycle walks parent pointers back from end to start, given the back
// edge end -> start.
func extractCycle(start, end int, parent []int) Cycle {
	cycle := Cycle{grapheditor.NodeIndex(start)}
	for current := end; current != start && current >= 0; current = parent[current] {
		cycle = append(cycle, grapheditor.NodeIndex(current))
	}
	return cycle
}
