package reconcile

import "time"

// Entry is the database view of one collection.
type Entry struct {
	Name     string
	Revision int64
}

// ExpectedPlans is the number of plans a collection at this revision owns.
func (e Entry) ExpectedPlans() int {
	if e.Revision <= 1 {
		return 0
	}
	return int(e.Revision - 1)
}

// Result is the reconciliation output for a single collection.
type Result struct {
	// ID is the collection id.
	ID string `json:"id"`

	// Name is empty for orphaned archives.
	Name string `json:"name"`

	DBPresent      bool `json:"db_present"`
	StoragePresent bool `json:"storage_present"`

	// Revision is the stored revision, 0 when missing from the database.
	Revision int64 `json:"revision"`

	// Archived counts the plans found in storage.
	Archived int `json:"archived"`

	// Mismatch describes differences, e.g. "plans: archived=1 expected=3".
	Mismatch []string `json:"mismatch"`
}

// Spec configures a reconciliation.
type Spec struct {
	Adapter Adapter

	// CacheTTL is how long built indices are reused. Zero disables caching.
	CacheTTL time.Duration
}

// CacheKey returns the key under which this spec's indices are cached.
func (s *Spec) CacheKey() string {
	return s.Adapter.Name()
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionPurgePlans deletes the archived plans of an orphaned collection.
	ActionPurgePlans ActionType = "purge_plans"
)

// Action represents a planned mutation operation.
type Action struct {
	Type ActionType `json:"type"`

	// Key is the collection id.
	Key string `json:"key"`

	// Plans lists the plan ids the action touches.
	Plans []string `json:"plans"`

	Reason string `json:"reason"`
}

// Plan contains reconciliation results and planned actions.
type Plan struct {
	Results []Result `json:"results"`
	Actions []Action `json:"actions"`
	Summary Summary  `json:"summary"`
}

// Summary provides aggregate statistics for a reconcile plan.
type Summary struct {
	TotalCollections int `json:"total_collections"`

	// MissingStorage counts collections with expected plans but none archived.
	MissingStorage int `json:"missing_storage"`

	// Orphaned counts archived collections missing from the database.
	Orphaned int `json:"orphaned"`

	Mismatches   int `json:"mismatches"`
	PurgeActions int `json:"purge_actions"`
}

// Options controls purge behavior.
type Options struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// DoPurge plans deletion of orphaned plans.
	DoPurge bool

	// Confirmed indicates the caller confirmed destructive actions.
	// If false, mutations will not execute regardless of DryRun.
	Confirmed bool
}
