package grapheditor

import (
	"math"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

// FrameContext is the read-only input of a Transition.
type FrameContext struct {
	Input  Input
	Nodes  []Node
	Links  []Link
	Pick   Picking
	Config Config
}

// Transition advances the interaction state machine by one frame. It does not
// touch the graph: changes come back as intents for the editor to execute.
// The only graph query it makes is Reachable, for the cycle guard.
func Transition(st State, fc FrameContext, g GraphReader) Outcome {
	s := stepper{st: st.Clone(), fc: fc, graph: g}
	s.clipboard()
	s.links()
	s.nodes()
	s.quadSelect()
	s.release()
	s.contextMenu()
	s.pan()
	s.out.State = s.st
	return s.out
}

type stepper struct {
	st    State
	fc    FrameContext
	graph GraphReader
	out   Outcome
	group int
}

func (s *stepper) newGroup() { s.group++ }

func (s *stepper) emit(in Intent) {
	in.Group = s.group
	s.out.Intents = append(s.out.Intents, in)
}

func (s *stepper) pressed(b MouseButton) bool {
	return s.fc.Input.Clicked(b) && !s.fc.Input.Captured
}

// clipboard runs the keyboard latch: a command fires on the frame the latch
// disarms, and the latch re-arms only once none of the keys is held.
func (s *stepper) clipboard() {
	in := s.fc.Input
	held := in.KeysDown & clipboardKeys
	if held == 0 {
		s.st.ClipboardArmed = true
		return
	}
	if !s.st.ClipboardArmed {
		return
	}
	s.st.ClipboardArmed = false
	if s.st.Mode != ModeIdle {
		return
	}

	sel := s.st.Selection.Indices()
	switch {
	case in.Ctrl && held.Has(KeyC):
		if len(sel) == 0 {
			return
		}
		s.newGroup()
		s.emit(Intent{Kind: IntentCopyNodes, Nodes: sel})
		s.out.Command = "copy"
	case in.Ctrl && held.Has(KeyV):
		s.newGroup()
		s.emit(Intent{Kind: IntentPasteNodes, Delta: s.fc.Config.PasteOffset})
		s.out.SelectPasted = true
		s.out.Command = "paste"
	case in.Ctrl && held.Has(KeyX):
		if len(sel) == 0 {
			return
		}
		s.newGroup()
		s.emit(Intent{Kind: IntentCopyNodes, Nodes: sel})
		s.emit(Intent{Kind: IntentDeleteNodes, Nodes: sel})
		s.st.Selection.Clear()
		s.out.Command = "cut"
	case held.Has(KeyDelete):
		if len(sel) == 0 {
			return
		}
		s.newGroup()
		s.emit(Intent{Kind: IntentDeleteNodes, Nodes: sel})
		s.st.Selection.Clear()
		s.out.Command = "delete"
	}
}

// links starts and resolves link drags.
func (s *stepper) links() {
	in := s.fc.Input
	pick := s.fc.Pick

	if s.st.Mode.editingLink() {
		if !in.Down(MousePrimary) {
			s.commitLink()
			s.st.Mode = ModeIdle
		}
		return
	}

	if s.st.Mode != ModeIdle || !s.pressed(MousePrimary) || !pick.HasBest {
		return
	}
	hit := pick.Best
	s.st.Mode = ModeEditingLink
	s.st.Link = LinkEdit{Node: hit.Node, Slot: hit.Slot, Column: hit.Column}

	// Grabbing an occupied input detaches its link; the drag then looks for
	// a new source.
	if hit.Column == InputColumn {
		if occ := occupant(s.fc.Links, hit.Node, hit.Slot); occ >= 0 {
			s.newGroup()
			s.emit(Intent{Kind: IntentDeleteLink, LinkIndex: occ})
		}
	}
}

func (s *stepper) commitLink() {
	pick := s.fc.Pick
	if !pick.HasBest {
		return
	}
	hit, edit := pick.Best, s.st.Link

	var l Link
	if edit.Column == InputColumn {
		l = Link{SourceNode: hit.Node, SourceSlot: hit.Slot, DestNode: edit.Node, DestSlot: edit.Slot}
	} else {
		l = Link{SourceNode: edit.Node, SourceSlot: edit.Slot, DestNode: hit.Node, DestSlot: hit.Slot}
	}

	if err := checkLink("gesture", l, s.fc.Nodes); err != nil {
		s.out.Violations = append(s.out.Violations, err)
		return
	}
	if l.SourceNode == l.DestNode {
		s.reject(RejectSameNode, l)
		return
	}
	if s.graph.Reachable(l.DestNode, l.SourceNode) {
		s.reject(RejectCycle, l)
		return
	}
	if indexOfLink(s.fc.Links, l) >= 0 {
		s.reject(RejectDuplicate, l)
		return
	}

	s.newGroup()
	if occ := occupant(s.fc.Links, l.DestNode, l.DestSlot); occ >= 0 {
		s.emit(Intent{Kind: IntentDeleteLink, LinkIndex: occ})
	}
	s.emit(Intent{Kind: IntentAddLink, Link: l})
}

func (s *stepper) reject(reason string, l Link) {
	s.out.Rejections = append(s.out.Rejections, Rejection{Reason: reason, Link: l})
}

// nodes starts node drags and accumulates the pending move offset.
func (s *stepper) nodes() {
	in := s.fc.Input

	if s.st.Mode == ModeIdle && s.pressed(MousePrimary) && s.fc.Pick.Hovered != NoNode {
		i := s.fc.Pick.Hovered
		if !s.st.Selection.Contains(i) {
			if !in.Shift {
				s.st.Selection.Clear()
			}
			s.st.Selection.Add(i)
		}
		s.st.Mode = ModeMovingNodes
		s.st.PressPos = in.Mouse
		s.st.MoveOffset = geom.Vec2{}
		s.st.Dragging = false
		return
	}

	if s.st.Mode != ModeMovingNodes || !in.Down(MousePrimary) || !in.MouseValid {
		return
	}
	if !s.st.Dragging && in.Mouse.Dist(s.st.PressPos) > s.fc.Config.DragThreshold {
		s.st.Dragging = true
	}
	if s.st.Dragging {
		s.st.MoveOffset = s.st.MoveOffset.Add(in.MouseDelta.Div(s.st.Viewport.Zoom))
	}
}

func (s *stepper) quadSelect() {
	in := s.fc.Input

	if s.st.Mode == ModeQuadSelecting {
		if in.Down(MousePrimary) {
			return
		}
		end := s.st.QuadStart
		if in.MouseValid {
			end = in.Mouse
		}
		hits := NewSelection(NodesInRect(s.fc.Nodes, s.st.Viewport, in.Region, geom.RectFromPoints(s.st.QuadStart, end))...)
		// Overlapped nodes are added, or removed with ctrl. Shift keeps the rest.
		for i := range s.fc.Nodes {
			switch n := NodeIndex(i); {
			case hits.Contains(n):
				s.st.Selection.Set(n, !in.Ctrl)
			case !in.Shift:
				s.st.Selection.Remove(n)
			}
		}
		s.st.Mode = ModeIdle
		return
	}

	if s.st.Mode == ModeIdle && s.pressed(MousePrimary) && in.InRegion() {
		s.st.Mode = ModeQuadSelecting
		s.st.QuadStart = in.Mouse
	}
}

// release returns every primary-button gesture to idle once the button is up,
// committing a pending move.
func (s *stepper) release() {
	if s.st.Mode == ModeIdle || s.st.Mode == ModePanningView || s.fc.Input.Down(MousePrimary) {
		return
	}
	if s.st.Mode == ModeMovingNodes && (math.Abs(s.st.MoveOffset.X) > s.fc.Config.MoveEpsilon ||
		math.Abs(s.st.MoveOffset.Y) > s.fc.Config.MoveEpsilon) {
		if sel := s.st.Selection.Indices(); len(sel) > 0 {
			s.newGroup()
			s.emit(Intent{Kind: IntentMoveNodes, Nodes: sel, Delta: s.st.MoveOffset})
		}
	}
	s.st.MoveOffset = geom.Vec2{}
	s.st.Dragging = false
	s.st.Mode = ModeIdle
}

func (s *stepper) contextMenu() {
	in := s.fc.Input
	if s.st.Mode != ModeIdle || !in.InRegion() || in.Captured {
		return
	}
	if !in.Clicked(MouseSecondary) && !in.KeysPressed.Has(KeyTab) {
		return
	}
	s.st.Menu = MenuState{
		Anchor: s.st.Viewport.ScreenToLogical(in.Mouse, in.Region),
		Node:   s.fc.Pick.Hovered,
	}
	s.out.MenuOpened = true
}

func (s *stepper) pan() {
	in := s.fc.Input
	switch {
	case s.st.Mode == ModePanningView && !in.Down(MouseMiddle):
		s.st.Mode = ModeIdle
		return
	case s.st.Mode == ModeIdle && s.pressed(MouseMiddle) && in.InRegion():
		s.st.Mode = ModePanningView
	}
	if s.st.Mode == ModePanningView {
		s.st.Viewport = s.st.Viewport.PanBy(in.MouseDelta)
	}
}

// occupant returns the index of the link ending at (node, slot), or -1.
func occupant(links []Link, node NodeIndex, slot SlotIndex) int {
	for i, l := range links {
		if l.DestNode == node && l.DestSlot == slot {
			return i
		}
	}
	return -1
}

func indexOfLink(links []Link, l Link) int {
	for i, existing := range links {
		if existing == l {
			return i
		}
	}
	return -1
}
