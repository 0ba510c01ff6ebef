// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteform

// SelectionSet is an insertion-ordered set of solution slugs bounded by a
// capacity. The bound is enforced here, not only by hiding candidates.
type SelectionSet struct {
	capacity int
	slugs    []string
}

func NewSelectionSet(capacity int) *SelectionSet {
	return &SelectionSet{
		capacity: capacity,
		slugs:    make([]string, 0, max(capacity, 0)),
	}
}

// Toggle adds slug when checked and removes it otherwise. Both directions are
// idempotent. Adding an absent slug to a full set returns ErrSelectionFull
// and leaves the set unchanged.
func (s *SelectionSet) Toggle(slug string, checked bool) error {
	i := s.indexOf(slug)

	if checked {
		if i >= 0 {
			return nil
		}
		if len(s.slugs) >= s.capacity {
			return ErrSelectionFull
		}
		s.slugs = append(s.slugs, slug)
		return nil
	}

	if i >= 0 {
		s.slugs = append(s.slugs[:i], s.slugs[i+1:]...)
	}
	return nil
}

func (s *SelectionSet) Size() int {
	return len(s.slugs)
}

func (s *SelectionSet) Cap() int {
	return s.capacity
}

func (s *SelectionSet) Contains(slug string) bool {
	return s.indexOf(slug) >= 0
}

// Slugs returns a copy in insertion order
func (s *SelectionSet) Slugs() []string {
	out := make([]string, len(s.slugs))
	copy(out, s.slugs)
	return out
}

func (s *SelectionSet) indexOf(slug string) int {
	for i, v := range s.slugs {
		if v == slug {
			return i
		}
	}
	return -1
}
