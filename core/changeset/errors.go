package changeset

import "errors"

// API misuse.
var (
	// ErrClosed is returned by every Builder method once Finalize has run.
	ErrClosed = errors.New("changeset: builder already finalized")
	// ErrEmptyChange is returned when an edit names no indices.
	ErrEmptyChange = errors.New("changeset: edit has no indices")
	// ErrNegativeIndex is returned when an edit names a negative index.
	ErrNegativeIndex = errors.New("changeset: negative index")
	// ErrNegativeCount is returned when old or new counts hold a negative value.
	ErrNegativeCount = errors.New("changeset: negative item count")
)

// Data inconsistencies found by Finalize.
var (
	// ErrSectionCount: new section count != old + inserted - deleted.
	ErrSectionCount = errors.New("changeset: section count mismatch")
	// ErrSectionOutOfBounds: a section edit falls outside its coordinate space.
	ErrSectionOutOfBounds = errors.New("changeset: section out of bounds")
	// ErrItemOutOfBounds: an item edit falls outside its section.
	ErrItemOutOfBounds = errors.New("changeset: item out of bounds")
	// ErrItemCount: a surviving section's item delta is not explained by its edits.
	ErrItemCount = errors.New("changeset: item count mismatch")
	// ErrReloadDeletedSection: a section is both reloaded and deleted.
	ErrReloadDeletedSection = errors.New("changeset: reload of deleted section")
	// ErrReloadInDeletedSection: an item is reloaded inside a deleted or reloaded section.
	ErrReloadInDeletedSection = errors.New("changeset: item reload in deleted section")
	// ErrDeleteReloadConflict: an item is both deleted and reloaded.
	ErrDeleteReloadConflict = errors.New("changeset: item both deleted and reloaded")
)
