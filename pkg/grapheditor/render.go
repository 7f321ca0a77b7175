package grapheditor

import (
	"math"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

const (
	linkOutlineWidth = 7.5
	linkWidth        = 5.0
	progressEpsilon  = 1e-3
	nodeRounding     = 2.0
	selectedBorder   = 6.0
	labelSize        = 14.0
	labelSizeHot     = 16.0
	editingLinkWidth = 3.0
)

var (
	imageInset    = geom.V(14, 25)
	imageInsetEnd = geom.V(5, 5)
)

// renderer paints one frame. It reads the state and the graph and never
// changes either.
type renderer struct {
	dl    *DrawList
	st    State
	pick  Picking
	nodes []Node
	links []Link
	graph GraphReader
	paint Painter
	in    Input
	style Style

	offset geom.Vec2
	zoom   float64

	violations []error
}

type readPainter interface {
	GraphReader
	Painter
}

func newRenderer(dl *DrawList, st State, pick Picking, nodes []Node, links []Link, d readPainter, in Input, style Style) *renderer {
	return &renderer{
		dl:     dl,
		st:     st,
		pick:   pick,
		nodes:  nodes,
		links:  links,
		graph:  d,
		paint:  d,
		in:     in,
		style:  style,
		offset: st.Viewport.Offset(in.Region),
		zoom:   st.Viewport.Zoom,
	}
}

// draw renders the whole frame into the three channels.
func (r *renderer) draw() {
	r.dl.PushClip(r.in.Region)
	defer r.dl.PopClip()

	r.dl.SetChannel(ChannelBackground)
	r.grid()
	r.drawLinks()

	for _, i := range r.pick.Visible {
		r.dl.SetChannel(ChannelNodes)
		r.drawNode(i)
		r.dl.SetChannel(ChannelForeground)
		r.drawSlots(i)
	}

	r.dl.SetChannel(ChannelForeground)
	r.feedback()
	r.dl.SetChannel(ChannelBackground)
}

func (r *renderer) grid() {
	spacing := r.style.GridSpacing * r.zoom
	if spacing <= 0 {
		return
	}
	region := r.in.Region
	size := region.Size()
	scroll := r.st.Viewport.Pan.Mul(r.zoom)

	for x := math.Mod(scroll.X, spacing); x < size.X; x += spacing {
		r.dl.AddLine(region.Min.Add(geom.V(x, 0)), region.Min.Add(geom.V(x, size.Y)), colorGrid, 1)
	}
	for y := math.Mod(scroll.Y, spacing); y < size.Y; y += spacing {
		r.dl.AddLine(region.Min.Add(geom.V(0, y)), region.Min.Add(geom.V(size.X, y)), colorGrid, 1)
	}
}

func (r *renderer) drawLinks() {
	region := r.in.Region
	for _, l := range r.links {
		if err := checkLink("render", l, r.nodes); err != nil {
			r.violations = append(r.violations, err)
			continue
		}
		src, dst := r.nodes[l.SourceNode], r.nodes[l.DestNode]
		p1 := r.offset.Add(OutputSlotPosition(src, l.SourceSlot, r.zoom)).Add(r.st.previewShift(l.SourceNode))
		p2 := r.offset.Add(InputSlotPosition(dst, l.DestSlot, r.zoom)).Add(r.st.previewShift(l.DestNode))

		if culled(p1, p2, region) {
			continue
		}

		highlight := r.pick.Hovered != NoNode && (r.pick.Hovered == l.SourceNode || r.pick.Hovered == l.DestNode)
		col := src.HeaderColor
		width := r.zoom
		if highlight {
			col |= linkHighlight
			width *= 2
		}

		route := RouteLink(p1, p2, r.zoom)
		r.dl.AddPolyline(route.Points, colorBlack, linkOutlineWidth*width)
		r.dl.AddPolyline(route.Points, col, linkWidth*width)
	}
}

// culled reports whether both ends of a link lie beyond the same edge of the
// region.
func culled(p1, p2 geom.Vec2, region geom.Rect) bool {
	switch {
	case p1.X < region.Min.X && p2.X < region.Min.X:
		return true
	case p1.X > region.Max.X && p2.X > region.Max.X:
		return true
	case p1.Y < region.Min.Y && p2.Y < region.Min.Y:
		return true
	case p1.Y > region.Max.Y && p2.Y > region.Max.Y:
		return true
	}
	return false
}

func (r *renderer) drawNode(i NodeIndex) {
	n := r.nodes[i]
	rect := NodeScreenRect(n, r.zoom).Translate(r.offset).Translate(r.st.previewShift(i))
	lo, hi := rect.Min, rect.Max

	if r.st.Selection.Contains(i) {
		r.dl.AddRect(lo, hi, colorSelected, nodeRounding, selectedBorder)
	}

	bg := n.BackgroundColor
	if r.pick.Hovered == i {
		bg = bg.Brighten(hoverTint)
	}
	r.dl.AddRectFilled(lo, hi, bg, nodeRounding)

	if p := r.graph.NodeProgress(i); p > progressEpsilon && p < 1-progressEpsilon {
		a := geom.V(lo.X+2, hi.Y-3)
		b := a.Add(geom.V(rect.Width()-4, 0))
		r.dl.AddLine(a, b, colorProgressBg, 3)
		r.dl.AddLine(a, geom.LerpVec(a, b, p), colorProgress, 3)
	}

	r.drawImage(i, lo, hi)

	header := geom.Rect{Min: lo, Max: geom.V(hi.X, lo.Y+headerHeight)}
	r.dl.AddRectFilled(header.Min, header.Max, n.HeaderColor, nodeRounding)
	r.dl.PushClip(header)
	r.dl.AddText(lo.Add(geom.V(2, 2)), colorBlack, r.style.FontSize, n.Name)
	r.dl.PopClip()
}

// drawImage hands the thumbnail square to the painter, with margins that keep
// the evaluation aspect ratio. Nodes too small for a thumbnail still get the
// call, with an empty square.
func (r *renderer) drawImage(i NodeIndex, lo, hi geom.Vec2) {
	pos := lo.Add(imageInset)
	avail := hi.Sub(imageInsetEnd).Sub(pos)
	side := math.Max(0, math.Min(avail.X, avail.Y))
	quad := geom.V(side, side)

	var margin geom.Vec2
	if eval := r.graph.EvaluationSize(i); eval.X > 0 && eval.Y > 0 {
		ratio := eval.Y / eval.X
		if ratio > 1 {
			margin.X = (quad.X - quad.Y/ratio) * 0.5
		} else {
			margin.Y = (quad.Y - quad.Y*ratio) * 0.5
		}
	}

	r.paint.DrawNodeImage(r.dl, geom.Rect{Min: pos, Max: pos.Add(quad)}, margin, i)
	r.dl.SetChannel(ChannelNodes)
}

func (r *renderer) drawSlots(i NodeIndex) {
	n := r.nodes[i]
	shift := r.st.previewShift(i)
	for _, c := range [...]Column{InputColumn, OutputColumn} {
		hot, hasHot := r.pick.HotSlot(i, c)
		for s, name := range n.Slots(c) {
			p := r.offset.Add(SlotPosition(n, c, SlotIndex(s), r.zoom)).Add(shift)
			r.drawSlot(p, c, name, hasHot && hot == SlotIndex(s))
		}
	}
}

func (r *renderer) drawSlot(p geom.Vec2, c Column, name string, hot bool) {
	size, spread := labelSize, 2.0
	if hot {
		size, spread = labelSizeHot, 3.0
	}
	ext := r.style.MeasureText(name, size)

	// Labels sit outside the node: left of inputs, right of outputs.
	dir := 1.0
	shiftX := ext.X
	if c == OutputColumn {
		dir, shiftX = -1, 0
	}
	text := p.Add(geom.V(-SlotRadius*dir*spread-shiftX, -ext.Y*0.5))

	if hot {
		r.dl.AddCircleFilled(p, SlotRadius*2, colorSlotOutline)
		r.dl.AddCircleFilled(p, SlotRadius*1.5, colorSlotHot)
		r.dl.AddText(text.Add(geom.V(1, 1)), colorBlack, size, name)
		r.dl.AddText(text, colorLabelHot, size, name)
		return
	}
	r.dl.AddCircleFilled(p, SlotRadius*1.2, colorSlotOutline)
	r.dl.AddCircleFilled(p, SlotRadius*0.9, colorSlot)
	r.dl.AddText(text.Add(geom.V(2, 2)), colorBlack, size, name)
	r.dl.AddText(text, colorLabel, size, name)
}

// feedback draws gesture feedback: the dragged link and the selection rectangle.
func (r *renderer) feedback() {
	in := r.in
	switch {
	case r.st.Mode.editingLink() && in.MouseValid:
		edit := r.st.Link
		if int(edit.Node) < 0 || int(edit.Node) >= len(r.nodes) {
			return
		}
		origin := r.offset.Add(SlotPosition(r.nodes[edit.Node], edit.Column, edit.Slot, r.zoom))
		r.dl.AddLine(origin, in.Mouse, colorEditingLink, editingLinkWidth)
	case r.st.Mode == ModeQuadSelecting && in.MouseValid:
		q := geom.RectFromPoints(r.st.QuadStart, in.Mouse)
		r.dl.AddRectFilled(q.Min, q.Max, colorQuadFill, 0)
		r.dl.AddRect(q.Min, q.Max, colorQuadBorder, 0, 1)
	}
}
