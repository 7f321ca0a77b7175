package document

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound      = errors.New("node not found")
	ErrSlotNotFound      = errors.New("slot not found")
	ErrLinkNotFound      = errors.New("link not found")
	ErrSelfLink          = errors.New("link connects a node to itself")
	ErrCycle             = errors.New("link would create a cycle")
	ErrDuplicateLink     = errors.New("link already exists")
	ErrSlotOccupied      = errors.New("input slot already connected")
	ErrNestedTransaction = errors.New("transaction already open")
	ErrNoTransaction     = errors.New("no open transaction")
	ErrEmptyClipboard    = errors.New("clipboard holds no nodes")
	ErrInvalidPayload    = errors.New("invalid clipboard payload")
)

// DocumentError provides structured error information for document operations.
type DocumentError struct {
	Op      string // Operation that failed (e.g., "AddLink", "MoveNodes")
	Entity  string // Entity type ("node", "link", "slot", "transaction")
	Index   int    // Entity index, -1 when not applicable
	Cause   error  // Underlying error
	Context string // Additional context
}

// Error implements the error interface.
func (e *DocumentError) Error() string {
	switch {
	case e.Index >= 0 && e.Context != "":
		return fmt.Sprintf("%s %s %d (%s): %v", e.Op, e.Entity, e.Index, e.Context, e.Cause)
	case e.Index >= 0:
		return fmt.Sprintf("%s %s %d: %v", e.Op, e.Entity, e.Index, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *DocumentError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func newError(op, entity string, index int, cause error) *DocumentError {
	return &DocumentError{Op: op, Entity: entity, Index: index, Cause: cause}
}
