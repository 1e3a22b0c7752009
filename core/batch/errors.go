package batch

import (
	"errors"

	"changeset-manager/core/changeset"
)

var (
	// ErrInvalidEdit is returned for edits that cannot be recorded.
	ErrInvalidEdit = errors.New("batch: invalid edit")
	// ErrDecode is returned when a document cannot be parsed.
	ErrDecode = errors.New("batch: malformed document")
)

// rejections are the errors caused by the content of a batch.
var rejections = []error{
	ErrInvalidEdit,
	changeset.ErrEmptyChange,
	changeset.ErrNegativeIndex,
	changeset.ErrNegativeCount,
	changeset.ErrSectionCount,
	changeset.ErrSectionOutOfBounds,
	changeset.ErrItemOutOfBounds,
	changeset.ErrItemCount,
	changeset.ErrReloadDeletedSection,
	changeset.ErrReloadInDeletedSection,
	changeset.ErrDeleteReloadConflict,
}

// IsRejected reports whether err rejects the batch itself, as opposed to a
// malformed document or an internal failure.
func IsRejected(err error) bool {
	for _, target := range rejections {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
