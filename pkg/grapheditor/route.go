package grapheditor

import (
	"math"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

// RouteCase identifies which branch of the router produced a path.
type RouteCase int

const (
	// RouteBackward loops around when the destination is left of the source.
	RouteBackward RouteCase = iota
	// RouteStraight is a horizontal run (ends on the same row).
	RouteStraight
	// RouteElbow bends once, for small vertical differences.
	RouteElbow
	// RouteS is a symmetric S with two bends.
	RouteS
)

func (c RouteCase) String() string {
	switch c {
	case RouteBackward:
		return "backward"
	case RouteStraight:
		return "straight"
	case RouteElbow:
		return "elbow"
	case RouteS:
		return "s"
	default:
		return "unknown"
	}
}

// Route is a link polyline from an output slot to an input slot.
type Route struct {
	Case   RouteCase
	Points []geom.Vec2
}

const (
	backwardLead      = 12.0
	straightTolerance = 1.0
	elbowTolerance    = 10.0
)

// RouteLink computes the polyline from p1 (output slot) to p2 (input slot).
// It is a pure function of its arguments; every segment is axis-aligned or at
// 45 degrees.
func RouteLink(p1, p2 geom.Vec2, zoom float64) Route {
	dif := p2.Sub(p1)
	lead := backwardLead * zoom

	if dif.X < lead {
		p10 := p1.Add(geom.V(lead, 0))
		p20 := p2.Sub(geom.V(lead, 0))
		d := p20.Sub(p10)
		a := p10.Add(geom.V(0, d.Y*0.5))
		b := a.Add(geom.V(d.X, 0))
		return Route{Case: RouteBackward, Points: []geom.Vec2{p1, p10, a, b, p20, p2}}
	}

	if math.Abs(dif.Y) < straightTolerance {
		return Route{Case: RouteStraight, Points: []geom.Vec2{p1, p1.Add(p2).Mul(0.5), p2}}
	}

	ax, ay := math.Abs(dif.X), math.Abs(dif.Y)
	sx, sy := geom.Sign(dif.X), geom.Sign(dif.Y)

	if ay < elbowTolerance {
		var a, b geom.Vec2
		if ax > ay {
			a = p1.Add(geom.V(math.Abs(ax-ay)*0.5*sx, 0))
			b = a.Add(geom.V(ay*sx, dif.Y))
		} else {
			a = p1.Add(geom.V(0, math.Abs(ay-ax)*0.5*sy))
			b = a.Add(geom.V(dif.X, ax*sy))
		}
		return Route{Case: RouteElbow, Points: []geom.Vec2{p1, a, b, p2}}
	}

	var a, b geom.Vec2
	if ax > ay {
		d := ay * sx * 0.5
		a = p1.Add(geom.V(d, dif.Y*0.5))
		b = a.Add(geom.V(math.Abs(ax-math.Abs(d)*2)*sx, 0))
	} else {
		d := ax * sy * 0.5
		a = p1.Add(geom.V(dif.X*0.5, d))
		b = a.Add(geom.V(0, math.Abs(ay-math.Abs(d)*2)*sy))
	}
	return Route{Case: RouteS, Points: []geom.Vec2{p1, a, b, p2}}
}
