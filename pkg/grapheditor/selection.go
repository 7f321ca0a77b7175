package grapheditor

import (
	"slices"

	"golang.org/x/exp/maps"
)

// Selection is a set of node indices. The zero value is an empty set ready
// to use.
type Selection struct {
	set map[NodeIndex]struct{}
}

// NewSelection returns a selection holding the given indices.
func NewSelection(indices ...NodeIndex) Selection {
	var s Selection
	for _, i := range indices {
		s.Add(i)
	}
	return s
}

func (s *Selection) Add(i NodeIndex) {
	if s.set == nil {
		s.set = make(map[NodeIndex]struct{})
	}
	s.set[i] = struct{}{}
}

func (s *Selection) Remove(i NodeIndex) {
	delete(s.set, i)
}

// Set adds or removes i.
func (s *Selection) Set(i NodeIndex, selected bool) {
	if selected {
		s.Add(i)
	} else {
		s.Remove(i)
	}
}

func (s Selection) Contains(i NodeIndex) bool {
	_, ok := s.set[i]
	return ok
}

func (s Selection) Len() int { return len(s.set) }

func (s *Selection) Clear() {
	s.set = nil
}

// Replace makes the selection exactly the given indices.
func (s *Selection) Replace(indices []NodeIndex) {
	s.Clear()
	for _, i := range indices {
		s.Add(i)
	}
}

// Indices returns the selected indices in ascending order, so mutation
// requests built from a selection are deterministic.
func (s Selection) Indices() []NodeIndex {
	keys := make([]NodeIndex, 0, len(s.set))
	for i := range s.set {
		keys = append(keys, i)
	}
	slices.Sort(keys)
	return keys
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	if s.set == nil {
		return Selection{}
	}
	return Selection{set: maps.Clone(s.set)}
}

// Prune drops indices outside [0, count) and reports how many were removed.
func (s *Selection) Prune(count int) int {
	removed := 0
	for i := range s.set {
		if int(i) < 0 || int(i) >= count {
			delete(s.set, i)
			removed++
		}
	}
	return removed
}

// Equal reports whether both selections hold the same indices.
func (s Selection) Equal(o Selection) bool {
	return maps.Equal(s.set, o.set)
}
