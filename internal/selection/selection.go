// Package selection tracks which record ids are checked, independent of how
// the table is drawn. The set is only meaningful for the currently loaded
// record set: callers clear it on every reload and on the active/deleted view
// toggle.
package selection

import "sort"

// Set holds the checked record ids.
type Set struct {
	ids map[int64]struct{}
}

func New() *Set {
	return &Set{ids: make(map[int64]struct{})}
}

// Toggle flips one id.
func (s *Set) Toggle(id int64) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// SetAll checks or unchecks every given id.
func (s *Set) SetAll(ids []int64, checked bool) {
	for _, id := range ids {
		if checked {
			s.ids[id] = struct{}{}
		} else {
			delete(s.ids, id)
		}
	}
}

func (s *Set) Clear() {
	s.ids = make(map[int64]struct{})
}

func (s *Set) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Set) Size() int { return len(s.ids) }

// IDs returns the checked ids in ascending order, for deterministic bulk
// iteration and logging.
func (s *Set) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
