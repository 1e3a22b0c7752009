package batch

import (
	"time"

	"changeset-manager/core/changeset"
)

// Op is the edit operation named in a document.
type Op string

const (
	OpInsert Op = "insert"
	OpDelete Op = "delete"
	OpReload Op = "reload"
	OpMove   Op = "move"
)

// Level is the granularity an edit applies to.
type Level string

const (
	LevelSection Level = "section"
	LevelItem    Level = "item"
)

// Request is a batch document.
type Request struct {
	// OldCounts holds per-section item counts before the update.
	// Services that own the collection fill it themselves.
	OldCounts []int `json:"old_counts" yaml:"old_counts"`

	// NewCounts holds per-section item counts after the update.
	NewCounts []int `json:"new_counts" yaml:"new_counts"`

	// ReloadData replaces the whole collection; Edits are ignored.
	ReloadData bool `json:"reload_data,omitempty" yaml:"reload_data,omitempty"`

	// Edits are recorded in order. Later edits win tag collisions.
	Edits []Edit `json:"edits" yaml:"edits"`
}

// Edit is one declared edit.
type Edit struct {
	Op    Op    `json:"op" yaml:"op"`
	Level Level `json:"level" yaml:"level"`

	// Tag is the opaque presentation key of the edit.
	Tag uint32 `json:"tag,omitempty" yaml:"tag,omitempty"`

	// Sections is used by section-level insert, delete and reload.
	Sections []int `json:"sections,omitempty" yaml:"sections,omitempty"`

	// Items is used by item-level insert, delete and reload.
	Items []changeset.ItemIndex `json:"items,omitempty" yaml:"items,omitempty"`

	// From and To are used by moves. For section moves only Section is read.
	From *changeset.ItemIndex `json:"from,omitempty" yaml:"from,omitempty"`
	To   *changeset.ItemIndex `json:"to,omitempty" yaml:"to,omitempty"`
}

// Group is one grouped change of a plan, in enumeration order.
type Group struct {
	Kind     string                `json:"kind"`
	Level    Level                 `json:"level"`
	Tag      uint32                `json:"tag"`
	Sections []int                 `json:"sections,omitempty"`
	Items    []changeset.ItemIndex `json:"items,omitempty"`
}

// PlanDoc is the rendered form of a finalized change set.
type PlanDoc struct {
	// ID uniquely identifies the plan.
	ID string `json:"id"`

	// CreatedAt is when the plan was produced.
	CreatedAt time.Time `json:"created_at"`

	OldCounts []int `json:"old_counts"`
	NewCounts []int `json:"new_counts"`

	// ReloadData is set when the batch replaced the whole collection.
	ReloadData bool `json:"reload_data,omitempty"`

	// Groups lists item deletes, section deletes, section inserts, then item
	// inserts. Applying them in this order reproduces the update.
	Groups []Group `json:"groups"`

	// SectionMap maps every old section to its new index, -1 when deleted.
	SectionMap []int `json:"section_map"`

	// Summary provides aggregate counts.
	Summary changeset.Summary `json:"summary"`
}
