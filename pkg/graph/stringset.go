package graph

import "strings"

// OrderedSet is an order-preserving string set whose only mutator is an
// insert-if-absent. Node array properties (NAME, id, source) carry
// append-only semantics; this type enforces them mechanically instead
// of leaving duplicate checks to each call site.
type OrderedSet struct {
	values []string
}

// NewOrderedSet builds a set from the given values, in order, dropping
// exact duplicates.
func NewOrderedSet(values ...string) *OrderedSet {
	s := &OrderedSet{}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add appends v unless an identical value is already present. Reports
// whether the set grew.
func (s *OrderedSet) Add(v string) bool {
	for _, existing := range s.values {
		if existing == v {
			return false
		}
	}
	s.values = append(s.values, v)
	return true
}

// AddFold appends v unless a case-insensitive match is already present.
func (s *OrderedSet) AddFold(v string) bool {
	if s.ContainsFold(v) {
		return false
	}
	s.values = append(s.values, v)
	return true
}

// ContainsFold reports whether a case-insensitive match for v exists.
func (s *OrderedSet) ContainsFold(v string) bool {
	for _, existing := range s.values {
		if strings.EqualFold(existing, v) {
			return true
		}
	}
	return false
}

// Values returns the elements in insertion order. The returned slice is
// a copy.
func (s *OrderedSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of elements.
func (s *OrderedSet) Len() int {
	return len(s.values)
}
