package grapheditor

import "github.com/dd0wney/cluso-grapheditor/pkg/geom"

// GraphReader exposes the graph owner's data. It is called several times per
// frame and must be cheap.
type GraphReader interface {
	Nodes() []Node
	Links() []Link
	// EvaluationSize is the natural size of the node's thumbnail; only its
	// aspect ratio matters. A zero size means "square".
	EvaluationSize(n NodeIndex) geom.Vec2
	// NodeProgress in [0,1]; values at the ends hide the progress bar.
	NodeProgress(n NodeIndex) float64
	// Reachable reports whether to can be reached from from by following
	// links from source to destination. A node reaches itself.
	Reachable(from, to NodeIndex) bool
}

// GraphMutator receives the editor's mutation requests. The editor validates
// indices before calling, but the owner should still treat them defensively.
type GraphMutator interface {
	AddLink(l Link)
	DeleteLink(index int)
	// MoveNodes translates the nodes by delta, in logical units.
	MoveNodes(nodes []NodeIndex, delta geom.Vec2)
	CopyNodes(nodes []NodeIndex)
	DeleteNodes(nodes []NodeIndex)
	// PasteNodes inserts the clipboard content translated by offset and
	// returns the indices of the new nodes.
	PasteNodes(offset geom.Vec2) []NodeIndex
}

// Transactor brackets the mutations of one gesture. The editor never nests
// transactions and always closes the one it opened within the same frame.
type Transactor interface {
	BeginTransaction(undoable bool)
	EndTransaction()
}

// ContextMenuRequest is passed to the delegate every frame.
type ContextMenuRequest struct {
	// Anchor is the logical position where the menu was last opened.
	Anchor geom.Vec2
	// Mouse is the current pointer position in logical coordinates.
	Mouse geom.Vec2
	// Node is the node under the pointer when the menu was opened, or NoNode.
	Node NodeIndex
	// Open is true on the single frame the menu should be opened.
	Open bool
}

// Painter lets the owner draw content the editor knows nothing about.
type Painter interface {
	// DrawNodeImage paints the thumbnail of node n inside rc, inset by margin
	// on each axis to preserve the image's aspect ratio.
	DrawNodeImage(dl *DrawList, rc geom.Rect, margin geom.Vec2, n NodeIndex)
	// ContextMenu is called every frame; the delegate owns menu visibility.
	ContextMenu(req ContextMenuRequest)
}

// Delegate is everything the editor needs from the graph owner.
type Delegate interface {
	GraphReader
	GraphMutator
	Transactor
	Painter
}
