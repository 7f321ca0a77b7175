package grapheditor

import "github.com/dd0wney/cluso-grapheditor/pkg/geom"

// Mode is the interaction mode. Exactly one is active at a time.
type Mode int

const (
	ModeIdle Mode = iota
	// ModeEditingLink: a link is being dragged out of a slot.
	ModeEditingLink
	// ModeQuadSelecting: a selection rectangle is being dragged.
	ModeQuadSelecting
	// ModeMovingNodes: the selection is being dragged.
	ModeMovingNodes
	// ModeEditingInputSlot is kept for hosts that distinguish a drag started
	// from an input slot; the editor itself uses ModeEditingLink for both and
	// treats this mode the same way.
	ModeEditingInputSlot
	// ModePanningView: the view follows the middle button.
	ModePanningView
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModeEditingLink:
		return "EditingLink"
	case ModeQuadSelecting:
		return "QuadSelecting"
	case ModeMovingNodes:
		return "MovingNodes"
	case ModeEditingInputSlot:
		return "EditingInputSlot"
	case ModePanningView:
		return "PanningView"
	default:
		return "Unknown"
	}
}

// editingLink reports whether the mode drags a link.
func (m Mode) editingLink() bool {
	return m == ModeEditingLink || m == ModeEditingInputSlot
}

// LinkEdit is the gesture payload of ModeEditingLink.
type LinkEdit struct {
	Node   NodeIndex
	Slot   SlotIndex
	Column Column
}

// Seeks is the column the dragged link may be dropped on.
func (l LinkEdit) Seeks() Column { return l.Column.Opposite() }

// MenuState remembers where the context menu was last opened.
type MenuState struct {
	Anchor geom.Vec2
	Node   NodeIndex
}

// State is everything the editor carries between frames.
type State struct {
	Mode Mode
	Link LinkEdit
	// QuadStart is the screen position where the selection rectangle began.
	QuadStart geom.Vec2
	// PressPos is the screen position of the primary press that started a move.
	PressPos geom.Vec2
	// MoveOffset is the pending logical displacement of the selection.
	MoveOffset geom.Vec2
	// Dragging latches once the pointer has left the drag threshold around
	// PressPos; from then on every pointer delta feeds MoveOffset.
	Dragging bool

	Selection Selection
	Viewport  Viewport
	Menu      MenuState
	// ClipboardArmed is the keyboard latch: commands fire only when armed.
	ClipboardArmed bool
}

// NewState returns the state of a freshly created or cleared editor.
func NewState() State {
	return State{
		Mode:           ModeIdle,
		Viewport:       NewViewport(),
		Menu:           MenuState{Node: NoNode},
		ClipboardArmed: true,
	}
}

// Clone returns a copy that shares nothing mutable with s.
func (s State) Clone() State {
	s.Selection = s.Selection.Clone()
	return s
}

// previewShift is the screen displacement applied to node i while drawing.
func (s State) previewShift(i NodeIndex) geom.Vec2 {
	if s.Mode == ModeMovingNodes && s.Selection.Contains(i) {
		return s.MoveOffset.Mul(s.Viewport.Zoom)
	}
	return geom.Vec2{}
}
