package grapheditor

import "github.com/dd0wney/cluso-grapheditor/pkg/geom"

// IntentKind enumerates the requests the state machine can make of the graph owner.
type IntentKind int

const (
	IntentAddLink IntentKind = iota
	IntentDeleteLink
	IntentMoveNodes
	IntentCopyNodes
	IntentDeleteNodes
	IntentPasteNodes
)

func (k IntentKind) String() string {
	switch k {
	case IntentAddLink:
		return "add_link"
	case IntentDeleteLink:
		return "delete_link"
	case IntentMoveNodes:
		return "move_nodes"
	case IntentCopyNodes:
		return "copy_nodes"
	case IntentDeleteNodes:
		return "delete_nodes"
	case IntentPasteNodes:
		return "paste_nodes"
	default:
		return "unknown"
	}
}

// mutates reports whether the intent changes the graph and therefore needs a
// transaction around it.
func (k IntentKind) mutates() bool {
	return k != IntentCopyNodes
}

// Intent is one request to the graph owner. Intents sharing a Group run inside
// a single transaction, opened before the first mutating intent of the group.
type Intent struct {
	Kind  IntentKind
	Group int

	Link      Link        // IntentAddLink
	LinkIndex int         // IntentDeleteLink
	Nodes     []NodeIndex // move, copy, delete
	Delta     geom.Vec2   // move delta or paste offset
}

// Rejection records a link gesture the editor declined.
type Rejection struct {
	Reason string
	Link   Link
}

const (
	RejectCycle     = "cycle"
	RejectDuplicate = "duplicate"
	RejectSameNode  = "same_node"
)

// Outcome is the result of one Transition.
type Outcome struct {
	State      State
	Intents    []Intent
	Rejections []Rejection
	// Violations are index-contract errors found while interpreting input.
	Violations []error
	// MenuOpened is set on the frame the context menu was requested.
	MenuOpened bool
	// SelectPasted asks the editor to replace the selection with the indices
	// returned by the paste intent.
	SelectPasted bool
	// Command names the clipboard command fired this frame, if any.
	Command string
}
