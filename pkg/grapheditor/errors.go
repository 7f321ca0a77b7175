package grapheditor

import (
	"errors"
	"fmt"
)

// Sentinel errors. The editor never returns them from Frame; they are logged
// and counted when the delegate reports indices the editor cannot use.
var (
	ErrNodeOutOfRange = errors.New("node index out of range")
	ErrSlotOutOfRange = errors.New("slot index out of range")
	ErrLinkOutOfRange = errors.New("link index out of range")
)

// ContractError describes delegate data that violates the editor's index
// contract.
type ContractError struct {
	Op     string // "render", "gesture", "paste", ...
	Entity string // "node", "slot", "link"
	Index  int
	Limit  int
	Cause  error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("grapheditor: %s: %s %d outside [0,%d): %v", e.Op, e.Entity, e.Index, e.Limit, e.Cause)
}

func (e *ContractError) Unwrap() error {
	return e.Cause
}

// Is matches another ContractError by Op and Entity.
func (e *ContractError) Is(target error) bool {
	t, ok := target.(*ContractError)
	if !ok {
		return false
	}
	return e.Op == t.Op && e.Entity == t.Entity
}

func nodeRangeError(op string, index, limit int) error {
	return &ContractError{Op: op, Entity: "node", Index: index, Limit: limit, Cause: ErrNodeOutOfRange}
}

func slotRangeError(op string, index, limit int) error {
	return &ContractError{Op: op, Entity: "slot", Index: index, Limit: limit, Cause: ErrSlotOutOfRange}
}

// checkLink validates both ends of a link against the node list.
func checkLink(op string, l Link, nodes []Node) error {
	if int(l.SourceNode) < 0 || int(l.SourceNode) >= len(nodes) {
		return nodeRangeError(op, int(l.SourceNode), len(nodes))
	}
	if int(l.DestNode) < 0 || int(l.DestNode) >= len(nodes) {
		return nodeRangeError(op, int(l.DestNode), len(nodes))
	}
	if n := nodes[l.SourceNode].OutputCount(); int(l.SourceSlot) < 0 || int(l.SourceSlot) >= n {
		return slotRangeError(op, int(l.SourceSlot), n)
	}
	if n := nodes[l.DestNode].InputCount(); int(l.DestSlot) < 0 || int(l.DestSlot) >= n {
		return slotRangeError(op, int(l.DestSlot), n)
	}
	return nil
}
