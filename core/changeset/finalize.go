package changeset

import (
	"errors"
	"fmt"
	"slices"
)

// sectionMap translates old section indices into new ones given the final
// sets of deleted (old space) and inserted (new space) sections.
type sectionMap struct {
	deleted  IndexSet
	inserted IndexSet
}

// newSection maps an old section to its new index. It returns false when the
// section is deleted.
func (m sectionMap) newSection(old int) (int, bool) {
	if m.deleted.Contains(old) {
		return 0, false
	}
	base := old - m.deleted.CountBelow(old)
	return m.inserted.ShiftPast(base), true
}

// Finalize closes the builder and reconciles every recorded edit against
// newCounts, the per-section item counts after the update.
//
// Reloads are split into delete+insert pairs, all edits are coalesced by tag,
// item edits inside deleted or inserted sections are dropped, and the result
// is validated. On any violation Finalize returns a nil Result and an error
// joining every violation found. The builder cannot be used afterwards.
func (b *Builder) Finalize(newCounts []int) (*Result, error) {
	if b.closed {
		return nil, ErrClosed
	}
	b.closed = true

	if err := checkCounts("old", b.oldCounts); err != nil {
		return nil, err
	}
	if err := checkCounts("new", newCounts); err != nil {
		return nil, err
	}

	r := &Result{
		oldCounts: b.oldCounts,
		newCounts: slices.Clone(newCounts),
	}
	if b.reloadData {
		r.reloadData = true
		return r, nil
	}

	if err := b.splitSectionReloads(r); err != nil {
		return nil, err
	}

	declaredDeletes := newOrdinalTable(b.items[Delete])
	declaredInserts := newOrdinalTable(b.items[Insert])

	if err := b.splitItemReloads(r, declaredDeletes, declaredInserts); err != nil {
		return nil, err
	}

	if err := r.validate(declaredDeletes, declaredInserts, newOrdinalTable(b.items[Reload])); err != nil {
		return nil, err
	}
	return r, nil
}

// splitSectionReloads turns section reloads into delete+insert pairs and
// stores the coalesced section changes and final mapping in r.
func (b *Builder) splitSectionReloads(r *Result) error {
	// Reload targets are placed against declared deletes and inserts only.
	prelim := sectionMap{
		deleted:  sectionsOf(b.sections[Delete]),
		inserted: sectionsOf(b.sections[Insert]),
	}

	deletes := slices.Clone(b.sections[Delete])
	inserts := slices.Clone(b.sections[Insert])

	var errs []error
	for _, c := range b.sections[Reload] {
		moved := make([]SectionIndex, 0, len(c.indices))
		for _, s := range c.indices {
			ns, ok := prelim.newSection(int(s))
			if !ok {
				errs = append(errs, fmt.Errorf("%w: section %d", ErrReloadDeletedSection, s))
				continue
			}
			moved = append(moved, SectionIndex(ns))
		}
		deletes = append(deletes, SectionChange{kind: Delete, indices: c.indices, tag: c.tag})
		if len(moved) > 0 {
			inserts = append(inserts, SectionChange{kind: Insert, indices: moved, tag: c.tag})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	r.sections[Delete] = Coalesce(deletes, Delete, nil)
	r.sections[Insert] = Coalesce(inserts, Insert, nil)
	r.mapping = sectionMap{
		deleted:  sectionsOf(r.sections[Delete]),
		inserted: sectionsOf(r.sections[Insert]),
	}
	return nil
}

// splitItemReloads turns item reloads into delete+insert pairs using the
// final section mapping, then coalesces item changes. Item deletes inside
// deleted sections and item inserts inside inserted sections are implied by
// the section change and dropped.
func (b *Builder) splitItemReloads(r *Result, declaredDeletes, declaredInserts ordinalTable) error {
	deletes := slices.Clone(b.items[Delete])
	inserts := slices.Clone(b.items[Insert])

	var errs []error
	for _, c := range b.items[Reload] {
		moved := make([]ItemIndex, 0, len(c.indices))
		for _, p := range c.indices {
			ns, ok := r.mapping.newSection(p.Section)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: item %s", ErrReloadInDeletedSection, p))
				continue
			}
			item := p.Item - declaredDeletes.at(p.Section).CountBelow(p.Item)
			item = declaredInserts.at(ns).ShiftPast(item)
			moved = append(moved, Item(ns, item))
		}
		deletes = append(deletes, ItemChange{kind: Delete, indices: c.indices, tag: c.tag})
		if len(moved) > 0 {
			inserts = append(inserts, ItemChange{kind: Insert, indices: moved, tag: c.tag})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	r.items[Delete] = Coalesce(deletes, Delete, func(p ItemIndex) bool {
		return r.mapping.deleted.Contains(p.Section)
	})
	r.items[Insert] = Coalesce(inserts, Insert, func(p ItemIndex) bool {
		return r.mapping.inserted.Contains(p.Section)
	})
	return nil
}
