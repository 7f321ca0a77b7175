// Package layout computes node positions for graphs whose nodes have no
// placement yet, and for the editor's arrange command.
package layout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

// ErrInvalidEdge is returned when an edge references a node outside the graph.
var ErrInvalidEdge = errors.New("edge references unknown node")

// Edge runs from an output of From to an input of To.
type Edge struct {
	From int
	To   int
}

// Graph is the topology a layout works on. Sizes holds one entry per node.
type Graph struct {
	Sizes []geom.Vec2
	Edges []Edge
}

// Len returns the number of nodes.
func (g Graph) Len() int { return len(g.Sizes) }

func (g Graph) validate() error {
	for i, e := range g.Edges {
		if e.From < 0 || e.From >= g.Len() || e.To < 0 || e.To >= g.Len() {
			return fmt.Errorf("edge %d (%d -> %d): %w", i, e.From, e.To, ErrInvalidEdge)
		}
	}
	return nil
}

// successors returns the adjacency list, each list sorted and deduplicated.
func (g Graph) successors() [][]int {
	adj := make([][]int, g.Len())
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], e.To)
	}
	for i := range adj {
		sort.Ints(adj[i])
		adj[i] = dedup(adj[i])
	}
	return adj
}

func dedup(s []int) []int {
	if len(s) < 2 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// Config configures layout parameters
type Config struct {
	Width      float64 // Canvas width, used by the circular and force layouts
	Height     float64 // Canvas height
	Padding    float64 // Distance from the canvas origin to the first node
	Spacing    float64 // Gap between neighbouring nodes
	Iterations int     // Number of iterations for iterative algorithms
	Seed       int64   // Seed for the force layout's initial placement
}

// DefaultConfig returns the stock layout parameters.
func DefaultConfig() Config {
	return Config{
		Width:      1200,
		Height:     800,
		Padding:    50,
		Spacing:    60,
		Iterations: 50,
		Seed:       1,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.Padding == 0 {
		c.Padding = d.Padding
	}
	if c.Spacing <= 0 {
		c.Spacing = d.Spacing
	}
	if c.Iterations <= 0 {
		c.Iterations = d.Iterations
	}
	return c
}

// Layout places every node of a graph. The result holds the logical top-left
// corner of each node, indexed like g.Sizes.
type Layout interface {
	Compute(g Graph) ([]geom.Vec2, error)
}

// Names lists the layouts ByName accepts.
var Names = []string{"hierarchical", "circular", "grid", "force"}

// ByName returns the named layout.
func ByName(name string, cfg Config) (Layout, error) {
	switch name {
	case "hierarchical", "":
		return NewHierarchical(cfg), nil
	case "circular":
		return NewCircular(cfg), nil
	case "grid":
		return NewGrid(cfg), nil
	case "force":
		return NewForceDirected(cfg), nil
	default:
		return nil, fmt.Errorf("unknown layout %q (want one of %v)", name, Names)
	}
}

// Bounds returns the rectangle covering all placed nodes.
func Bounds(pos, sizes []geom.Vec2) geom.Rect {
	if len(pos) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{Min: pos[0], Max: pos[0].Add(sizes[0])}
	for i := 1; i < len(pos); i++ {
		r = r.Union(geom.Rect{Min: pos[i], Max: pos[i].Add(sizes[i])})
	}
	return r
}
