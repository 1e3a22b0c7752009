package changeset

import (
	"fmt"
	"slices"
)

// Builder collects edits for one batched update. Edits are recorded as
// declared; sorting, reload splitting and validation happen in Finalize.
//
// A Builder has a single owner and is not safe for concurrent use.
type Builder struct {
	oldCounts  []int
	sections   [3][]SectionChange
	items      [3][]ItemChange
	reloadData bool
	closed     bool
}

// NewBuilder starts a batch over a collection whose sections hold oldCounts
// items each. The slice is copied.
func NewBuilder(oldCounts []int) *Builder {
	return &Builder{oldCounts: slices.Clone(oldCounts)}
}

// OldCounts returns the per-section item counts before the update.
func (b *Builder) OldCounts() []int {
	return slices.Clone(b.oldCounts)
}

// InsertSections records sections inserted at the given new indices.
func (b *Builder) InsertSections(sections []int, tag Tag) error {
	return b.addSections(Insert, sections, tag)
}

// DeleteSections records sections deleted at the given old indices.
func (b *Builder) DeleteSections(sections []int, tag Tag) error {
	return b.addSections(Delete, sections, tag)
}

// ReloadSections records sections reloaded at the given old indices.
func (b *Builder) ReloadSections(sections []int, tag Tag) error {
	return b.addSections(Reload, sections, tag)
}

// InsertItems records items inserted at the given new index paths.
func (b *Builder) InsertItems(items []ItemIndex, tag Tag) error {
	return b.addItems(Insert, items, tag)
}

// DeleteItems records items deleted at the given old index paths.
func (b *Builder) DeleteItems(items []ItemIndex, tag Tag) error {
	return b.addItems(Delete, items, tag)
}

// ReloadItems records items reloaded at the given old index paths.
func (b *Builder) ReloadItems(items []ItemIndex, tag Tag) error {
	return b.addItems(Reload, items, tag)
}

// MoveSection records a section moving from an old index to a new index.
// It is recorded as a delete of from and an insert of to.
func (b *Builder) MoveSection(from, to int, tag Tag) error {
	if b.closed {
		return ErrClosed
	}
	del, err := NewSectionChange(Delete, []int{from}, tag)
	if err != nil {
		return err
	}
	ins, err := NewSectionChange(Insert, []int{to}, tag)
	if err != nil {
		return err
	}
	b.sections[Delete] = append(b.sections[Delete], del)
	b.sections[Insert] = append(b.sections[Insert], ins)
	return nil
}

// MoveItem records an item moving from an old index path to a new one.
// It is recorded as a delete of from and an insert of to.
func (b *Builder) MoveItem(from, to ItemIndex, tag Tag) error {
	if b.closed {
		return ErrClosed
	}
	del, err := NewItemChange(Delete, []ItemIndex{from}, tag)
	if err != nil {
		return err
	}
	ins, err := NewItemChange(Insert, []ItemIndex{to}, tag)
	if err != nil {
		return err
	}
	b.items[Delete] = append(b.items[Delete], del)
	b.items[Insert] = append(b.items[Insert], ins)
	return nil
}

// ReloadData marks the batch as a full reload. Finalize then skips all
// per-edit processing and validation.
func (b *Builder) ReloadData() error {
	if b.closed {
		return ErrClosed
	}
	b.reloadData = true
	return nil
}

// EditCount returns the number of edit calls recorded so far.
func (b *Builder) EditCount() int {
	n := 0
	for k := range b.sections {
		n += len(b.sections[k]) + len(b.items[k])
	}
	return n
}

func (b *Builder) addSections(kind Kind, sections []int, tag Tag) error {
	if b.closed {
		return ErrClosed
	}
	c, err := NewSectionChange(kind, sections, tag)
	if err != nil {
		return err
	}
	b.sections[kind] = append(b.sections[kind], c)
	return nil
}

func (b *Builder) addItems(kind Kind, items []ItemIndex, tag Tag) error {
	if b.closed {
		return ErrClosed
	}
	c, err := NewItemChange(kind, items, tag)
	if err != nil {
		return err
	}
	b.items[kind] = append(b.items[kind], c)
	return nil
}

func checkCounts(name string, counts []int) error {
	for s, n := range counts {
		if n < 0 {
			return fmt.Errorf("%w: %s[%d] = %d", ErrNegativeCount, name, s, n)
		}
	}
	return nil
}
