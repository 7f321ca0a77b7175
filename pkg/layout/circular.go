package layout

import (
	"math"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

// Circular arranges nodes in a circle
type Circular struct {
	config Config
}

// NewCircular creates a new circular layout
func NewCircular(cfg Config) *Circular {
	return &Circular{config: cfg.withDefaults()}
}

// Compute centres the nodes on a circle inside the canvas, in index order,
// starting at three o'clock.
func (cl *Circular) Compute(g Graph) ([]geom.Vec2, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	n := g.Len()
	if n == 0 {
		return nil, nil
	}

	center := geom.V(cl.config.Width/2, cl.config.Height/2)
	var largest geom.Vec2
	for _, s := range g.Sizes {
		largest = largest.Max(s)
	}
	radius := math.Min(center.X-largest.X/2, center.Y-largest.Y/2) - cl.config.Padding
	radius = math.Max(radius, 0)

	pos := make([]geom.Vec2, n)
	angleStep := 2 * math.Pi / float64(n)
	for i := range pos {
		angle := float64(i) * angleStep
		c := center.Add(geom.V(radius*math.Cos(angle), radius*math.Sin(angle)))
		pos[i] = c.Sub(g.Sizes[i].Mul(0.5))
	}
	return pos, nil
}
