package changeset

import (
	"fmt"
	"slices"
	"strings"
)

// Result is a finalized change set. It is immutable and safe for concurrent
// readers.
//
// Reloads never appear in a Result: every reload has been split into a
// delete at its old index and an insert at its new index.
type Result struct {
	oldCounts  []int
	newCounts  []int
	sections   [3][]SectionChange
	items      [3][]ItemChange
	mapping    sectionMap
	reloadData bool
}

// Summary aggregates a Result for reporting.
type Summary struct {
	DeletedSections  int `json:"deleted_sections"`
	InsertedSections int `json:"inserted_sections"`
	DeletedItems     int `json:"deleted_items"`
	InsertedItems    int `json:"inserted_items"`
	Groups           int `json:"groups"`
}

// IncludesReloadData reports whether the batch was a full reload, in which
// case no grouped changes are produced.
func (r *Result) IncludesReloadData() bool {
	return r.reloadData
}

// SectionChanges returns the grouped section changes of a kind in
// enumeration order.
func (r *Result) SectionChanges(kind Kind) []SectionChange {
	if !kind.valid() {
		return nil
	}
	return slices.Clone(r.sections[kind])
}

// ItemChanges returns the grouped item changes of a kind in enumeration order.
func (r *Result) ItemChanges(kind Kind) []ItemChange {
	if !kind.valid() {
		return nil
	}
	return slices.Clone(r.items[kind])
}

// ItemOrdinals returns every item ordinal touched by changes of kind in
// section. Deletes are in old coordinates, inserts in new coordinates.
func (r *Result) ItemOrdinals(kind Kind, section int) IndexSet {
	if !kind.valid() {
		return IndexSet{}
	}
	var ordinals []int
	for _, c := range r.items[kind] {
		for _, p := range c.indices {
			if p.Section == section {
				ordinals = append(ordinals, p.Item)
			}
		}
	}
	return NewIndexSet(ordinals...)
}

// NewSection maps an old section index to its index after the update.
// It returns false if the section was deleted or reloaded.
func (r *Result) NewSection(old int) (int, bool) {
	if r.reloadData {
		return 0, false
	}
	return r.mapping.newSection(old)
}

// DeletedSections returns the deleted sections in old coordinates.
func (r *Result) DeletedSections() IndexSet {
	return r.mapping.deleted
}

// InsertedSections returns the inserted sections in new coordinates.
func (r *Result) InsertedSections() IndexSet {
	return r.mapping.inserted
}

// OldCounts returns the per-section item counts before the update.
func (r *Result) OldCounts() []int {
	return slices.Clone(r.oldCounts)
}

// NewCounts returns the per-section item counts after the update.
func (r *Result) NewCounts() []int {
	return slices.Clone(r.newCounts)
}

// Summary returns aggregate counts for the Result.
func (r *Result) Summary() Summary {
	s := Summary{
		DeletedSections:  r.mapping.deleted.Len(),
		InsertedSections: r.mapping.inserted.Len(),
	}
	for _, c := range r.items[Delete] {
		s.DeletedItems += c.Len()
	}
	for _, c := range r.items[Insert] {
		s.InsertedItems += c.Len()
	}
	for k := range r.sections {
		s.Groups += len(r.sections[k]) + len(r.items[k])
	}
	return s
}

func (r *Result) String() string {
	if r.reloadData {
		return fmt.Sprintf("changeset{reload data, %d -> %d sections}", len(r.oldCounts), len(r.newCounts))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "changeset{%d -> %d sections", len(r.oldCounts), len(r.newCounts))
	for _, k := range []Kind{Delete, Insert} {
		for _, c := range r.sections[k] {
			fmt.Fprintf(&b, "; section %s", c)
		}
		for _, c := range r.items[k] {
			fmt.Fprintf(&b, "; item %s", c)
		}
	}
	b.WriteString("}")
	return b.String()
}
