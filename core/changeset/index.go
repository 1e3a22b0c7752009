package changeset

import (
	"cmp"
	"fmt"
	"slices"
)

// Index is the constraint shared by section and item indices.
// Compare must define a total order.
type Index[T any] interface {
	comparable
	Compare(other T) int
}

// SectionIndex is the position of a section in the outer sequence.
type SectionIndex int

// Compare orders section indices numerically.
func (s SectionIndex) Compare(other SectionIndex) int {
	return cmp.Compare(s, other)
}

// ItemIndex addresses an item within a section.
// Item indices are ordered by section first, then by item.
type ItemIndex struct {
	Section int `json:"section" yaml:"section"`
	Item    int `json:"item" yaml:"item"`
}

// Item is shorthand for ItemIndex{Section: section, Item: item}.
func Item(section, item int) ItemIndex {
	return ItemIndex{Section: section, Item: item}
}

// Compare orders item indices section-major.
func (p ItemIndex) Compare(other ItemIndex) int {
	if c := cmp.Compare(p.Section, other.Section); c != 0 {
		return c
	}
	return cmp.Compare(p.Item, other.Item)
}

func (p ItemIndex) String() string {
	return fmt.Sprintf("(%d,%d)", p.Section, p.Item)
}

// Order is the enumeration direction of a change group.
type Order int

const (
	// Ascending enumerates from low to high index.
	Ascending Order = iota
	// Descending enumerates from high to low index.
	Descending
)

func (o Order) String() string {
	if o == Descending {
		return "descending"
	}
	return "ascending"
}

// compareIn returns the comparison of a and b in the given order.
func compareIn[T Index[T]](o Order, a, b T) int {
	if o == Descending {
		return b.Compare(a)
	}
	return a.Compare(b)
}

// sortIndices sorts idx in place and removes duplicates.
func sortIndices[T Index[T]](idx []T, o Order) []T {
	slices.SortFunc(idx, func(a, b T) int { return compareIn(o, a, b) })
	return slices.Compact(idx)
}

// sectionValues converts plain ints into SectionIndex values.
func sectionValues(sections []int) []SectionIndex {
	out := make([]SectionIndex, len(sections))
	for i, s := range sections {
		out[i] = SectionIndex(s)
	}
	return out
}
