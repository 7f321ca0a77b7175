package layout

import (
	"math"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

// Grid places nodes row by row in a near-square grid of uniform cells.
type Grid struct {
	config Config
}

// NewGrid creates a new grid layout
func NewGrid(cfg Config) *Grid {
	return &Grid{config: cfg.withDefaults()}
}

func (gl *Grid) Compute(g Graph) ([]geom.Vec2, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	n := g.Len()
	if n == 0 {
		return nil, nil
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	var cell geom.Vec2
	for _, s := range g.Sizes {
		cell = cell.Max(s)
	}
	step := cell.Add(geom.V(gl.config.Spacing, gl.config.Spacing))

	pos := make([]geom.Vec2, n)
	for i := range pos {
		col, row := i%cols, i/cols
		pos[i] = geom.V(
			gl.config.Padding+float64(col)*step.X,
			gl.config.Padding+float64(row)*step.Y,
		)
	}
	return pos, nil
}
