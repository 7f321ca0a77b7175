package grapheditor

import "github.com/dd0wney/cluso-grapheditor/pkg/geom"

const (
	// SlotRadius is the slot marker radius in pixels. The pick radius is twice this.
	SlotRadius = 8.0
	// slotHeaderClearance pushes every slot below the header band.
	slotHeaderClearance = 8.0
	headerHeight        = 20.0
)

// slotY distributes count slots evenly along the node's height.
func slotY(n Node, slot SlotIndex, count int, zoom float64) float64 {
	return n.Rect.Min.Y*zoom + n.Rect.Height()*zoom*float64(slot+1)/float64(count+1) + slotHeaderClearance
}

// InputSlotPosition returns the centre of an input slot relative to the
// frame offset. Inputs sit on the node's left edge.
func InputSlotPosition(n Node, slot SlotIndex, zoom float64) geom.Vec2 {
	return geom.Vec2{
		X: n.Rect.Min.X * zoom,
		Y: slotY(n, slot, n.InputCount(), zoom),
	}
}

// OutputSlotPosition returns the centre of an output slot relative to the
// frame offset. Outputs sit on the node's right edge.
func OutputSlotPosition(n Node, slot SlotIndex, zoom float64) geom.Vec2 {
	return geom.Vec2{
		X: n.Rect.Min.X*zoom + n.Rect.Width()*zoom,
		Y: slotY(n, slot, n.OutputCount(), zoom),
	}
}

// SlotPosition dispatches on the column.
func SlotPosition(n Node, c Column, slot SlotIndex, zoom float64) geom.Vec2 {
	if c == OutputColumn {
		return OutputSlotPosition(n, slot, zoom)
	}
	return InputSlotPosition(n, slot, zoom)
}

// NodeScreenRect returns the node rectangle scaled by zoom, relative to the
// frame offset.
func NodeScreenRect(n Node, zoom float64) geom.Rect {
	origin := n.Rect.Min.Mul(zoom)
	return geom.Rect{Min: origin, Max: origin.Add(n.Rect.Size().Mul(zoom))}
}

// FrameOffset is the screen position of the logical origin: the canvas origin
// plus the pan offset scaled by zoom. Every logical-to-screen conversion adds it.
func FrameOffset(region geom.Rect, pan geom.Vec2, zoom float64) geom.Vec2 {
	return region.Min.Add(pan.Mul(zoom))
}
