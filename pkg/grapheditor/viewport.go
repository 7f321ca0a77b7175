package grapheditor

import (
	"math"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

// Viewport maps logical coordinates to the screen:
// screen = region.Min + (logical + Pan) * Zoom.
type Viewport struct {
	Pan        geom.Vec2
	Zoom       float64
	TargetZoom float64
}

// NewViewport returns the identity viewport.
func NewViewport() Viewport {
	return Viewport{Zoom: 1, TargetZoom: 1}
}

// Offset is the screen position of the logical origin.
func (v Viewport) Offset(region geom.Rect) geom.Vec2 {
	return FrameOffset(region, v.Pan, v.Zoom)
}

// ScreenToLogical converts a screen position to logical coordinates.
func (v Viewport) ScreenToLogical(p geom.Vec2, region geom.Rect) geom.Vec2 {
	return p.Sub(v.Offset(region)).Div(v.Zoom)
}

// LogicalToScreen converts a logical position to screen coordinates.
func (v Viewport) LogicalToScreen(p geom.Vec2, region geom.Rect) geom.Vec2 {
	return v.Offset(region).Add(p.Mul(v.Zoom))
}

// PanBy moves the view by a screen-space delta.
func (v Viewport) PanBy(delta geom.Vec2) Viewport {
	v.Pan = v.Pan.Add(delta.Div(v.Zoom))
	return v
}

// Scroll applies one frame of zoom handling. When acceptWheel is set and the
// pointer is over the region, a wheel notch scales the target zoom; the
// current zoom then eases toward the target, and the pan is corrected so the
// logical point under the pointer stays put.
func (v Viewport) Scroll(in Input, acceptWheel bool, cfg Config) Viewport {
	if acceptWheel && in.InRegion() {
		switch {
		case in.Wheel < 0:
			v.TargetZoom *= 1 - cfg.ZoomStep
		case in.Wheel > 0:
			v.TargetZoom *= 1 + cfg.ZoomStep
		}
	}
	v.TargetZoom = geom.Clamp(v.TargetZoom, cfg.ZoomMin, cfg.ZoomMax)

	prev := v.Zoom
	v.Zoom = geom.Lerp(v.Zoom, v.TargetZoom, cfg.ZoomEase)
	if math.Abs(v.Zoom-v.TargetZoom) < 1e-6 {
		v.Zoom = v.TargetZoom
	}
	v.Zoom = geom.Clamp(v.Zoom, cfg.ZoomMin, cfg.ZoomMax)

	if in.MouseValid && v.Zoom != prev {
		rel := in.Mouse.Sub(in.Region.Min)
		v.Pan = v.Pan.Add(rel.Div(v.Zoom).Sub(rel.Div(prev)))
	}
	return v
}

// FitTo pans so the top-left-most node corner lands at margin (logical units
// from the canvas origin). An empty graph leaves the viewport unchanged.
func (v Viewport) FitTo(nodes []Node, margin geom.Vec2) Viewport {
	if len(nodes) == 0 {
		return v
	}
	lo := nodes[0].Rect.Min
	for _, n := range nodes[1:] {
		lo = lo.Min(n.Rect.Min)
	}
	v.Pan = margin.Sub(lo)
	return v
}
