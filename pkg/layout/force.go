package layout

import (
	"math"
	"math/rand"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

// ForceDirected implements a force-directed layout: linked nodes attract,
// all nodes repel. The initial placement comes from Config.Seed, so the
// result is reproducible.
type ForceDirected struct {
	config Config
}

// NewForceDirected creates a new force-directed layout
func NewForceDirected(cfg Config) *ForceDirected {
	return &ForceDirected{config: cfg.withDefaults()}
}

// Compute computes positions using force-directed algorithm
func (fd *ForceDirected) Compute(g Graph) ([]geom.Vec2, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	n := g.Len()
	if n == 0 {
		return nil, nil
	}
	cfg := fd.config

	// Single node - place it at the padding corner
	if n == 1 {
		return []geom.Vec2{geom.V(cfg.Padding, cfg.Padding)}, nil
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	centers := make([]geom.Vec2, n)
	for i := range centers {
		centers[i] = geom.V(
			rng.Float64()*(cfg.Width-2*cfg.Padding)+cfg.Padding,
			rng.Float64()*(cfg.Height-2*cfg.Padding)+cfg.Padding,
		)
	}

	// Undirected neighbour sets for attraction
	adj := g.successors()
	neighbours := make([][]int, n)
	for i, next := range adj {
		for _, j := range next {
			if i == j {
				continue
			}
			neighbours[i] = append(neighbours[i], j)
			neighbours[j] = append(neighbours[j], i)
		}
	}

	k := math.Sqrt((cfg.Width * cfg.Height) / float64(n)) // Optimal distance
	temperature := cfg.Width / 10.0
	forces := make([]geom.Vec2, n)

	for iter := 0; iter < cfg.Iterations; iter++ {
		for i := range forces {
			forces[i] = geom.Vec2{}
		}

		// Repulsion between all nodes
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				d := centers[i].Sub(centers[j])
				dist := math.Max(d.Len(), 0.01)
				f := d.Div(dist).Mul(k * k / dist)
				forces[i] = forces[i].Add(f)
				forces[j] = forces[j].Sub(f)
			}
		}

		// Attraction between connected nodes
		for i := range neighbours {
			for _, j := range neighbours[i] {
				d := centers[i].Sub(centers[j])
				dist := d.Len()
				if dist < 0.01 {
					continue
				}
				forces[i] = forces[i].Sub(d.Div(dist).Mul(dist * dist / k))
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(cfg.Iterations)
		for i, f := range forces {
			if mag := f.Len(); mag > 0 {
				centers[i] = centers[i].Add(f.Div(mag).Mul(math.Min(mag, temperature) * cool))
			}
		}
		temperature *= 0.95
	}

	centers = normalize(centers, cfg.Width, cfg.Height, cfg.Padding)
	pos := make([]geom.Vec2, n)
	for i, c := range centers {
		pos[i] = c.Sub(g.Sizes[i].Mul(0.5))
	}
	return pos, nil
}

// normalize scales points to fit within the padded canvas
func normalize(points []geom.Vec2, width, height, padding float64) []geom.Vec2 {
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo, hi = lo.Min(p), hi.Max(p)
	}
	span := hi.Sub(lo)
	if span.X < 0.01 {
		span.X = 1
	}
	if span.Y < 0.01 {
		span.Y = 1
	}

	target := geom.V(width-2*padding, height-2*padding)
	out := make([]geom.Vec2, len(points))
	for i, p := range points {
		rel := p.Sub(lo)
		out[i] = geom.V(padding+rel.X/span.X*target.X, padding+rel.Y/span.Y*target.Y)
	}
	return out
}
