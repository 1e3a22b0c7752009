package changeset

import (
	"fmt"
	"slices"
	"strings"
)

// Kind is the type of a structural edit.
type Kind int

const (
	// Insert adds indices, expressed in new coordinates.
	Insert Kind = iota
	// Delete removes indices, expressed in old coordinates.
	Delete
	// Reload replaces indices in place, expressed in old coordinates.
	Reload
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{Insert, Delete, Reload}

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Reload:
		return "reload"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Order returns the enumeration direction of change groups of this kind.
// Deletes run high to low so lower, not yet removed indices stay valid.
func (k Kind) Order() Order {
	if k == Delete {
		return Descending
	}
	return Ascending
}

func (k Kind) valid() bool {
	return k >= Insert && k <= Reload
}

// Tag is an opaque presentation key attached to a group of edits.
// It is only ever compared for equality.
type Tag uint32

// Change is an immutable group of edits of one kind sharing a Tag.
type Change[T Index[T]] struct {
	kind    Kind
	indices []T
	tag     Tag
}

// SectionChange is a grouped edit of whole sections.
type SectionChange = Change[SectionIndex]

// ItemChange is a grouped edit of items.
type ItemChange = Change[ItemIndex]

// NewSectionChange creates a section change. Sections are treated as a set:
// duplicates are dropped and the result is ordered by the kind's direction.
func NewSectionChange(kind Kind, sections []int, tag Tag) (SectionChange, error) {
	for _, s := range sections {
		if s < 0 {
			return SectionChange{}, fmt.Errorf("%w: section %d", ErrNegativeIndex, s)
		}
	}
	idx := sortIndices(sectionValues(sections), kind.Order())
	return newChange(kind, idx, tag)
}

// NewItemChange creates an item change. The caller's order is kept.
func NewItemChange(kind Kind, items []ItemIndex, tag Tag) (ItemChange, error) {
	for _, p := range items {
		if p.Section < 0 || p.Item < 0 {
			return ItemChange{}, fmt.Errorf("%w: item %s", ErrNegativeIndex, p)
		}
	}
	return newChange(kind, slices.Clone(items), tag)
}

// newChange takes ownership of indices.
func newChange[T Index[T]](kind Kind, indices []T, tag Tag) (Change[T], error) {
	if !kind.valid() {
		return Change[T]{}, fmt.Errorf("changeset: unknown change kind %d", int(kind))
	}
	if len(indices) == 0 {
		return Change[T]{}, fmt.Errorf("%w: %s", ErrEmptyChange, kind)
	}
	return Change[T]{kind: kind, indices: indices, tag: tag}, nil
}

// Kind returns the kind of the change.
func (c Change[T]) Kind() Kind {
	return c.kind
}

// Tag returns the presentation key of the change.
func (c Change[T]) Tag() Tag {
	return c.tag
}

// Len returns the number of indices in the change.
func (c Change[T]) Len() int {
	return len(c.indices)
}

// Indices returns a copy of the change's indices in enumeration order.
func (c Change[T]) Indices() []T {
	return slices.Clone(c.indices)
}

func (c Change[T]) String() string {
	parts := make([]string, len(c.indices))
	for i, idx := range c.indices {
		parts[i] = fmt.Sprint(idx)
	}
	return fmt.Sprintf("%s[%s] tag=%d", c.kind, strings.Join(parts, " "), c.tag)
}

// sectionsOf collects every section touched by changes.
func sectionsOf(changes []SectionChange) IndexSet {
	var all []int
	for _, c := range changes {
		for _, s := range c.indices {
			all = append(all, int(s))
		}
	}
	return NewIndexSet(all...)
}
