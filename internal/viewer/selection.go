package viewer

import (
	"fmt"
	"sort"
)

// Selection is the set of selected mesh indices plus the selection mode
// flag. While the mode is active, left clicks pick instead of dragging.
type Selection struct {
	ModeActive bool

	members   map[int]struct{}
	meshCount int
}

// NewSelection creates an empty selection for a scene with meshCount meshes.
func NewSelection(meshCount int) *Selection {
	return &Selection{
		members:   make(map[int]struct{}),
		meshCount: meshCount,
	}
}

// ToggleMode flips selection mode. Membership is left alone.
func (s *Selection) ToggleMode() {
	s.ModeActive = !s.ModeActive
}

// ClickSelect applies the result of a pick.
//
// Without additive the set becomes {index} on a hit and empty on a miss.
// With additive a hit toggles index and a miss changes nothing.
func (s *Selection) ClickSelect(index int, hit, additive bool) error {
	if hit && (index < 0 || index >= s.meshCount) {
		return fmt.Errorf("%w: selected %d (have %d)", ErrOutOfRange, index, s.meshCount)
	}

	switch {
	case !additive:
		s.Clear()
		if hit {
			s.members[index] = struct{}{}
		}
	case hit:
		if _, ok := s.members[index]; ok {
			delete(s.members, index)
		} else {
			s.members[index] = struct{}{}
		}
	}
	return nil
}

// Clear empties the set.
func (s *Selection) Clear() {
	clear(s.members)
}

// Reset empties the set and rebinds it to a scene with meshCount meshes.
// The mode flag survives.
func (s *Selection) Reset(meshCount int) {
	s.Clear()
	s.meshCount = meshCount
}

// IsSelected reports whether mesh i is in the set.
func (s *Selection) IsSelected(i int) bool {
	_, ok := s.members[i]
	return ok
}

// Len returns the number of selected meshes.
func (s *Selection) Len() int {
	return len(s.members)
}

// Members returns the selected indices in ascending order.
func (s *Selection) Members() []int {
	out := make([]int, 0, len(s.members))
	for i := range s.members {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
