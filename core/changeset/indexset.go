package changeset

import (
	"slices"
)

// IndexSet is an immutable, sorted set of non-negative integer indices.
// The zero value is an empty set.
type IndexSet struct {
	values []int
}

// NewIndexSet builds a set from arbitrary, possibly repeated values.
func NewIndexSet(values ...int) IndexSet {
	if len(values) == 0 {
		return IndexSet{}
	}
	v := slices.Clone(values)
	slices.Sort(v)
	return IndexSet{values: slices.Compact(v)}
}

// Len returns the number of indices in the set.
func (s IndexSet) Len() int {
	return len(s.values)
}

// IsEmpty reports whether the set has no indices.
func (s IndexSet) IsEmpty() bool {
	return len(s.values) == 0
}

// Values returns the indices in ascending order.
func (s IndexSet) Values() []int {
	return slices.Clone(s.values)
}

// Contains reports whether v is in the set.
func (s IndexSet) Contains(v int) bool {
	_, found := slices.BinarySearch(s.values, v)
	return found
}

// CountBelow returns how many indices in the set are strictly less than v.
func (s IndexSet) CountBelow(v int) int {
	n, _ := slices.BinarySearch(s.values, v)
	return n
}

// ShiftPast returns where v lands once every index of the set has been
// inserted. Each insertion at or below the running candidate pushes it up by
// one, so the result never collides with an index of the set.
func (s IndexSet) ShiftPast(v int) int {
	for _, x := range s.values {
		if x > v {
			break
		}
		v++
	}
	return v
}

// FirstAbove returns the smallest index greater than limit.
func (s IndexSet) FirstAbove(limit int) (int, bool) {
	n, found := slices.BinarySearch(s.values, limit)
	if found {
		n++
	}
	if n < len(s.values) {
		return s.values[n], true
	}
	return 0, false
}

// Union returns the indices present in either set.
func (s IndexSet) Union(other IndexSet) IndexSet {
	switch {
	case other.IsEmpty():
		return s
	case s.IsEmpty():
		return other
	}
	merged := make([]int, 0, len(s.values)+len(other.values))
	i, j := 0, 0
	for i < len(s.values) && j < len(other.values) {
		a, b := s.values[i], other.values[j]
		switch {
		case a < b:
			merged = append(merged, a)
			i++
		case b < a:
			merged = append(merged, b)
			j++
		default:
			merged = append(merged, a)
			i++
			j++
		}
	}
	merged = append(merged, s.values[i:]...)
	merged = append(merged, other.values[j:]...)
	return IndexSet{values: merged}
}

// Intersect returns the indices present in both sets.
func (s IndexSet) Intersect(other IndexSet) IndexSet {
	var common []int
	i, j := 0, 0
	for i < len(s.values) && j < len(other.values) {
		a, b := s.values[i], other.values[j]
		switch {
		case a < b:
			i++
		case b < a:
			j++
		default:
			common = append(common, a)
			i++
			j++
		}
	}
	return IndexSet{values: common}
}

// ordinalTable maps a section id to the set of item ordinals touched in it.
// Section ids are dense, so storage is a slice indexed by section.
type ordinalTable struct {
	sections []IndexSet
}

// newOrdinalTable collects the item ordinals of changes per section.
func newOrdinalTable(changes []ItemChange) ordinalTable {
	maxSection := -1
	for _, c := range changes {
		for _, p := range c.indices {
			maxSection = max(maxSection, p.Section)
		}
	}
	if maxSection < 0 {
		return ordinalTable{}
	}

	raw := make([][]int, maxSection+1)
	for _, c := range changes {
		for _, p := range c.indices {
			raw[p.Section] = append(raw[p.Section], p.Item)
		}
	}

	t := ordinalTable{sections: make([]IndexSet, len(raw))}
	for s, items := range raw {
		t.sections[s] = NewIndexSet(items...)
	}
	return t
}

// at returns the ordinals recorded for section, empty if none.
func (t ordinalTable) at(section int) IndexSet {
	if section < 0 || section >= len(t.sections) {
		return IndexSet{}
	}
	return t.sections[section]
}

// each calls fn for every section holding at least one ordinal.
func (t ordinalTable) each(fn func(section int, items IndexSet)) {
	for s, items := range t.sections {
		if !items.IsEmpty() {
			fn(s, items)
		}
	}
}
