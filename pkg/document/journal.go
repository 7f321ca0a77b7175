package document

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
)

// OpKind names a journaled mutation.
type OpKind string

const (
	OpAddLink     OpKind = "add_link"
	OpDeleteLink  OpKind = "delete_link"
	OpMoveNodes   OpKind = "move_nodes"
	OpDeleteNodes OpKind = "delete_nodes"
	OpPasteNodes  OpKind = "paste_nodes"
	OpAddNode     OpKind = "add_node"
	OpArrange     OpKind = "arrange"
)

// Op is one mutation applied to the document.
type Op struct {
	Kind  OpKind            `json:"kind"`
	Nodes []int             `json:"nodes,omitempty"`
	Link  *grapheditor.Link `json:"link,omitempty"`
	Index int               `json:"index,omitempty"`
	Delta geom.Vec2         `json:"delta,omitzero"`
}

// Entry is one committed transaction. Mutations made outside a transaction
// are journaled as implicit single-op entries.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Undoable  bool      `json:"undoable"`
	Implicit  bool      `json:"implicit,omitempty"`
	Ops       []Op      `json:"ops"`
}

// Kind is the metrics label of the entry.
func (e *Entry) Kind() string {
	if e.Implicit {
		return "implicit"
	}
	return "transaction"
}

// Journal keeps the most recent entries in a circular buffer
type Journal struct {
	entries    []*Entry
	bufferSize int
	index      int
	count      int
	total      int64
	mu         sync.RWMutex
}

// NewJournal creates a journal holding at most bufferSize entries.
func NewJournal(bufferSize int) *Journal {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Journal{
		entries:    make([]*Entry, bufferSize),
		bufferSize: bufferSize,
	}
}

// Append records an entry, filling in its ID and timestamp if unset.
func (j *Journal) Append(e *Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if e.ID == "" {
		e.ID = newID()
	}

	j.entries[j.index] = e
	j.index = (j.index + 1) % j.bufferSize
	if j.count < j.bufferSize {
		j.count++
	}
	j.total++
}

// Entries returns the retained entries, oldest first.
func (j *Journal) Entries() []*Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	result := make([]*Entry, 0, j.count)
	for i := 0; i < j.count; i++ {
		idx := (j.index - j.count + i + j.bufferSize) % j.bufferSize
		result = append(result, j.entries[idx])
	}
	return result
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(n int) []*Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if n > j.count {
		n = j.count
	}
	result := make([]*Entry, 0, n)
	for i := 0; i < n; i++ {
		idx := (j.index - 1 - i + j.bufferSize) % j.bufferSize
		result = append(result, j.entries[idx])
	}
	return result
}

// Find returns the retained entry with the given ID.
func (j *Journal) Find(id string) (*Entry, bool) {
	for _, e := range j.Entries() {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Len returns the number of retained entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.count
}

// Total returns the number of entries ever appended.
func (j *Journal) Total() int64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.total
}

func newID() string {
	return uuid.New().String()
}
