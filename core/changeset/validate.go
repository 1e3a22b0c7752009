package changeset

import (
	"errors"
	"fmt"
)

// validate checks that the finalized change set explains the transition from
// oldCounts to newCounts. It only reads state.
//
// Item count reconciliation uses the caller-declared deletes and inserts:
// every reload contributes one delete and one insert to the same section, so
// it never changes a section's count.
func (r *Result) validate(declaredDeletes, declaredInserts, reloaded ordinalTable) error {
	var errs []error
	oldN, newN := len(r.oldCounts), len(r.newCounts)
	deleted, inserted := r.mapping.deleted, r.mapping.inserted

	if want := oldN + inserted.Len() - deleted.Len(); newN != want {
		errs = append(errs, fmt.Errorf("%w: %d sections after update, want %d (%d + %d inserted - %d deleted)",
			ErrSectionCount, newN, want, oldN, inserted.Len(), deleted.Len()))
	}
	if s, ok := deleted.FirstAbove(oldN - 1); ok {
		errs = append(errs, fmt.Errorf("%w: deleted section %d, %d sections before update",
			ErrSectionOutOfBounds, s, oldN))
	}
	if s, ok := inserted.FirstAbove(newN - 1); ok {
		errs = append(errs, fmt.Errorf("%w: inserted section %d, %d sections after update",
			ErrSectionOutOfBounds, s, newN))
	}

	errs = append(errs, checkItemBounds(r.items[Delete], r.oldCounts, "before")...)
	errs = append(errs, checkItemBounds(r.items[Insert], r.newCounts, "after")...)

	reloaded.each(func(section int, items IndexSet) {
		if both := declaredDeletes.at(section).Intersect(items); !both.IsEmpty() {
			errs = append(errs, fmt.Errorf("%w: section %d items %v",
				ErrDeleteReloadConflict, section, both.Values()))
		}
	})

	for s := 0; s < oldN; s++ {
		ns, ok := r.mapping.newSection(s)
		if !ok || ns >= newN {
			continue
		}
		ins := declaredInserts.at(ns).Len()
		del := declaredDeletes.at(s).Len()
		if want := r.oldCounts[s] + ins - del; r.newCounts[ns] != want {
			errs = append(errs, fmt.Errorf("%w: section %d -> %d has %d items, want %d (%d + %d inserted - %d deleted)",
				ErrItemCount, s, ns, r.newCounts[ns], want, r.oldCounts[s], ins, del))
		}
	}

	return errors.Join(errs...)
}

// checkItemBounds reports the first out-of-range index of each change.
func checkItemBounds(changes []ItemChange, counts []int, when string) []error {
	var errs []error
	for _, c := range changes {
		for _, p := range c.indices {
			if p.Section >= len(counts) {
				errs = append(errs, fmt.Errorf("%w: item %s, %d sections %s update",
					ErrSectionOutOfBounds, p, len(counts), when))
				break
			}
			if p.Item >= counts[p.Section] {
				errs = append(errs, fmt.Errorf("%w: item %s, section holds %d items %s update",
					ErrItemOutOfBounds, p, counts[p.Section], when))
				break
			}
		}
	}
	return errs
}
