package layout

import (
	"math"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

// Hierarchical arranges nodes in columns, left to right, so links run from
// outputs on the right of one column to inputs in a later column.
type Hierarchical struct {
	config Config
}

// NewHierarchical creates a new hierarchical layout
func NewHierarchical(cfg Config) *Hierarchical {
	return &Hierarchical{config: cfg.withDefaults()}
}

// Compute assigns each node to the column given by its longest path from a
// root. Nodes caught in a cycle go to the column after the last one.
func (h *Hierarchical) Compute(g Graph) ([]geom.Vec2, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	n := g.Len()
	if n == 0 {
		return nil, nil
	}

	layer := longestPathLayers(g)
	columns := 0
	for _, l := range layer {
		columns = max(columns, l+1)
	}

	widths := make([]float64, columns)
	for i, l := range layer {
		widths[l] = math.Max(widths[l], g.Sizes[i].X)
	}

	x := make([]float64, columns)
	cursor := h.config.Padding
	for c := range x {
		x[c] = cursor
		cursor += widths[c] + h.config.Spacing
	}

	pos := make([]geom.Vec2, n)
	y := make([]float64, columns)
	for c := range y {
		y[c] = h.config.Padding
	}
	for i := 0; i < n; i++ {
		c := layer[i]
		pos[i] = geom.V(x[c], y[c])
		y[c] += g.Sizes[i].Y + h.config.Spacing
	}
	return pos, nil
}

// longestPathLayers runs Kahn's algorithm, pushing each node one layer past
// its deepest predecessor.
func longestPathLayers(g Graph) []int {
	n := g.Len()
	adj := g.successors()
	indegree := make([]int, n)
	for _, next := range adj {
		for _, j := range next {
			indegree[j]++
		}
	}

	layer := make([]int, n)
	done := make([]bool, n)
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	deepest := 0
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		done[i] = true
		deepest = max(deepest, layer[i])
		for _, j := range adj[i] {
			layer[j] = max(layer[j], layer[i]+1)
			indegree[j]--
			if indegree[j] == 0 {
				queue = append(queue, j)
			}
		}
	}

	cyclic := false
	for i := range done {
		if !done[i] {
			cyclic = true
			break
		}
	}
	if cyclic {
		for i := range done {
			if !done[i] {
				layer[i] = deepest + 1
			}
		}
	}
	return layer
}
