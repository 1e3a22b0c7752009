package changeset

import (
	"errors"
	"fmt"
	"slices"
)

// ErrLayoutMismatch is returned by Apply when a layout does not have the
// shape a Result expects.
var ErrLayoutMismatch = errors.New("changeset: layout does not match counts")

// Apply replays a finalized Result on a nested layout and returns the new
// layout. The input is not modified.
//
// Item deletes run high to low, then section deletes high to low, then
// section inserts low to high (each filled with NewCounts()[s] fresh items),
// then item inserts low to high. fresh is called with the new-space index of
// every inserted item.
func Apply[T any](layout [][]T, r *Result, fresh func(ItemIndex) T) ([][]T, error) {
	if err := checkShape(layout, r.oldCounts); err != nil {
		return nil, fmt.Errorf("before update: %w", err)
	}

	if r.reloadData {
		out := make([][]T, len(r.newCounts))
		for s, n := range r.newCounts {
			out[s] = freshSection(s, n, fresh)
		}
		return out, nil
	}

	out := make([][]T, len(layout))
	for s := range layout {
		out[s] = slices.Clone(layout[s])
	}

	for _, c := range r.items[Delete] {
		for _, p := range c.indices {
			out[p.Section] = slices.Delete(out[p.Section], p.Item, p.Item+1)
		}
	}
	for _, c := range r.sections[Delete] {
		for _, s := range c.indices {
			out = slices.Delete(out, int(s), int(s)+1)
		}
	}
	for _, c := range r.sections[Insert] {
		for _, s := range c.indices {
			if int(s) > len(out) || int(s) >= len(r.newCounts) {
				return nil, fmt.Errorf("%w: cannot insert section %d", ErrLayoutMismatch, s)
			}
			out = slices.Insert(out, int(s), freshSection(int(s), r.newCounts[s], fresh))
		}
	}
	for _, c := range r.items[Insert] {
		for _, p := range c.indices {
			if p.Section >= len(out) || p.Item > len(out[p.Section]) {
				return nil, fmt.Errorf("%w: cannot insert item %s", ErrLayoutMismatch, p)
			}
			out[p.Section] = slices.Insert(out[p.Section], p.Item, fresh(p))
		}
	}

	if err := checkShape(out, r.newCounts); err != nil {
		return nil, fmt.Errorf("after update: %w", err)
	}
	return out, nil
}

// Counts returns the per-section item counts of a layout.
func Counts[T any](layout [][]T) []int {
	counts := make([]int, len(layout))
	for s, items := range layout {
		counts[s] = len(items)
	}
	return counts
}

func freshSection[T any](section, n int, fresh func(ItemIndex) T) []T {
	items := make([]T, n)
	for i := range items {
		items[i] = fresh(Item(section, i))
	}
	return items
}

func checkShape[T any](layout [][]T, counts []int) error {
	if len(layout) != len(counts) {
		return fmt.Errorf("%w: %d sections, want %d", ErrLayoutMismatch, len(layout), len(counts))
	}
	for s, items := range layout {
		if len(items) != counts[s] {
			return fmt.Errorf("%w: section %d has %d items, want %d", ErrLayoutMismatch, s, len(items), counts[s])
		}
	}
	return nil
}
