// Package grapheditor is an immediate-mode node-graph editor core. Every frame
// the host hands it the pointer/keyboard state and a Delegate that owns the
// graph; the editor interprets the input, asks the delegate to mutate the graph
// through a small set of requests, and returns a DrawList describing what to
// paint. The editor never owns nodes or links.
package grapheditor

import (
	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

// NodeIndex is the position of a node in the delegate's node list. Indices are
// only meaningful for the frame they were read in.
type NodeIndex int

// SlotIndex is the position of a slot in a node's input or output column.
type SlotIndex int

// NoNode marks the absence of a node (nothing hovered, no candidate).
const NoNode NodeIndex = -1

// Node is the editor's view of a graph node. Rect is in logical coordinates.
type Node struct {
	Name            string
	Rect            geom.Rect
	HeaderColor     Color
	BackgroundColor Color
	Inputs          []string
	Outputs         []string
}

// InputCount returns the number of input slots.
func (n Node) InputCount() int { return len(n.Inputs) }

// OutputCount returns the number of output slots.
func (n Node) OutputCount() int { return len(n.Outputs) }

// Link connects an output slot of SourceNode to an input slot of DestNode.
// At most one link may end at a given (DestNode, DestSlot).
type Link struct {
	SourceNode NodeIndex `json:"source_node" yaml:"from"`
	SourceSlot SlotIndex `json:"source_slot" yaml:"from_slot"`
	DestNode   NodeIndex `json:"dest_node" yaml:"to"`
	DestSlot   SlotIndex `json:"dest_slot" yaml:"to_slot"`
}

// Column selects the input (left) or output (right) side of a node.
type Column int

const (
	InputColumn Column = iota
	OutputColumn
)

func (c Column) String() string {
	if c == OutputColumn {
		return "output"
	}
	return "input"
}

// Opposite returns the column a link started from this column must end on.
func (c Column) Opposite() Column {
	if c == OutputColumn {
		return InputColumn
	}
	return OutputColumn
}

// Slots returns the slot names of the given column.
func (n Node) Slots(c Column) []string {
	if c == OutputColumn {
		return n.Outputs
	}
	return n.Inputs
}
