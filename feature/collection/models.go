package collection

import (
	"time"

	"changeset-manager/core/batch"
)

// Collection is a persisted sectioned collection.
type Collection struct {
	ID       string `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name     string `gorm:"column:name;size:255;not null" json:"name"`
	Revision int64  `gorm:"column:revision;not null;default:1" json:"revision"`
	// Layout holds the item keys of every section, in order.
	Layout    [][]string `gorm:"column:layout;type:text;serializer:json" json:"layout"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Collection) TableName() string {
	return "collections"
}

// CreateRequest is the body of POST /collections.
type CreateRequest struct {
	Name string `json:"name"`
	// Counts holds the initial item count of every section.
	Counts []int `json:"counts"`
}

// Submission is a batch submitted against a collection revision.
type Submission struct {
	// Revision is the revision the edits were computed against.
	Revision   int64        `json:"revision" yaml:"revision"`
	NewCounts  []int        `json:"new_counts" yaml:"new_counts"`
	ReloadData bool         `json:"reload_data,omitempty" yaml:"reload_data,omitempty"`
	Edits      []batch.Edit `json:"edits" yaml:"edits"`
}
