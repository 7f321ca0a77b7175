package grapheditor

import (
	"math"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

// SlotHit is a slot under (or nearest to) the pointer.
type SlotHit struct {
	Node   NodeIndex
	Column Column
	Slot   SlotIndex
	// Pos is the slot centre in screen coordinates.
	Pos  geom.Vec2
	Dist float64
}

// Picking is the result of hit-testing one frame. It is computed before the
// state machine runs and is only valid for that frame's node list.
type Picking struct {
	// Visible lists the nodes overlapping the canvas, in draw order.
	Visible []NodeIndex
	// Hovered is the topmost node under the pointer while idle, unless the
	// pointer resolves to one of that node's slots.
	Hovered NodeIndex
	// Best is the slot a press or release resolves to. While a link is being
	// dragged only slots of the opposite column on other nodes qualify.
	Best    SlotHit
	HasBest bool

	hot [][2]SlotIndex
}

// HotSlot returns the highlighted slot of node n in column c, if any.
func (p Picking) HotSlot(n NodeIndex, c Column) (SlotIndex, bool) {
	if int(n) < 0 || int(n) >= len(p.hot) {
		return 0, false
	}
	s := p.hot[n][c]
	return s, s >= 0
}

// Pick hit-tests the pointer against the visible nodes.
func Pick(nodes []Node, st State, in Input) Picking {
	p := Picking{Hovered: NoNode, hot: make([][2]SlotIndex, len(nodes))}
	zoom := st.Viewport.Zoom
	offset := st.Viewport.Offset(in.Region)

	for i := range nodes {
		p.hot[i] = [2]SlotIndex{-1, -1}
		if NodeScreenRect(nodes[i], zoom).Translate(offset).Overlaps(in.Region) {
			p.Visible = append(p.Visible, NodeIndex(i))
		}
	}
	if !in.MouseValid {
		return p
	}

	editing := st.Mode.editingLink()
	if st.Mode == ModeIdle || editing {
		for _, i := range p.Visible {
			n := nodes[i]
			inside := NodeScreenRect(n, zoom).Translate(offset).Contains(in.Mouse)
			for _, c := range [...]Column{InputColumn, OutputColumn} {
				hit, ok := nearestSlot(n, c, offset, zoom, in.Mouse)
				if !ok {
					continue
				}
				// While dragging, the node body snaps to the nearest slot of
				// the column being sought.
				fallback := editing && inside && st.Link.Seeks() == c
				if hit.Dist >= 2*SlotRadius && !fallback {
					continue
				}
				hit.Node = i
				p.hot[i][c] = hit.Slot

				if editing && (c != st.Link.Seeks() || i == st.Link.Node) {
					continue
				}
				if !p.HasBest || hit.Dist <= p.Best.Dist {
					p.Best = hit
					p.HasBest = true
				}
			}
		}
	}

	if st.Mode == ModeIdle {
		for k := len(p.Visible) - 1; k >= 0; k-- {
			i := p.Visible[k]
			if !NodeScreenRect(nodes[i], zoom).Translate(offset).Contains(in.Mouse) {
				continue
			}
			if p.hot[i][InputColumn] < 0 && p.hot[i][OutputColumn] < 0 {
				p.Hovered = i
			}
			break
		}
	}
	return p
}

func nearestSlot(n Node, c Column, offset geom.Vec2, zoom float64, mouse geom.Vec2) (SlotHit, bool) {
	count := len(n.Slots(c))
	best := SlotHit{Column: c, Dist: math.Inf(1)}
	for s := 0; s < count; s++ {
		pos := offset.Add(SlotPosition(n, c, SlotIndex(s), zoom))
		if d := pos.Dist(mouse); d < best.Dist {
			best.Slot = SlotIndex(s)
			best.Pos = pos
			best.Dist = d
		}
	}
	return best, count > 0
}

// NodesInRect returns, in ascending order, the nodes whose screen rectangles
// overlap rect (screen coordinates).
func NodesInRect(nodes []Node, vp Viewport, region, rect geom.Rect) []NodeIndex {
	offset := vp.Offset(region)
	var out []NodeIndex
	for i := range nodes {
		if NodeScreenRect(nodes[i], vp.Zoom).Translate(offset).Overlaps(rect) {
			out = append(out, NodeIndex(i))
		}
	}
	return out
}
