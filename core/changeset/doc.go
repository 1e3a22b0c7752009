// Package changeset reconciles batched structural edits of a two-level ordered
// collection (sections containing items) into a minimal, index-consistent set of
// grouped operations.
//
// Callers declare edits independently at section and item level. Deletes and
// reloads are expressed in old coordinates, inserts in new coordinates. On
// Finalize the package:
//   - splits every reload into an equivalent delete (old index) and insert
//     (new index) pair
//   - coalesces overlapping edits into maximal runs sharing a presentation Tag
//   - drops item edits already implied by whole-section deletes/inserts
//   - proves, by counting, that the declared edits explain the count delta
//
// # Architecture
//
// 1. IndexOps: SectionIndex and ItemIndex share the Index constraint, so one
// generic Coalesce serves both granularities. IndexSet answers "how many below"
// and "where does X land after these insertions".
//
// 2. Change: an immutable grouped edit {Kind, indices, Tag}. Delete groups
// enumerate from high to low, Insert groups from low to high.
//
// 3. Builder / Result: the Builder only accepts edits; Finalize consumes it and
// returns an immutable Result that only answers queries. A Result is safe for
// concurrent readers.
//
// # Usage Example
//
//	b := changeset.NewBuilder([]int{3, 3})
//	_ = b.DeleteSections([]int{0}, changeset.Tag(0))
//	_ = b.ReloadItems([]changeset.ItemIndex{changeset.Item(1, 2)}, changeset.Tag(1))
//
//	res, err := b.Finalize([]int{3})
//	if err != nil {
//	    // errors.Is(err, changeset.ErrItemCount), ...
//	}
//	for _, c := range res.SectionChanges(changeset.Delete) {
//	    fmt.Println(c.Indices())
//	}
//
// # Errors
//
// Every failure is a contract violation. API misuse (ErrClosed, ErrEmptyChange,
// ErrNegativeIndex) is reported by the call that caused it. Data inconsistencies
// are collected during Finalize and returned together through errors.Join; a
// failed Finalize never yields a Result, so nothing can be applied by mistake.
package changeset
