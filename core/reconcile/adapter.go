package reconcile

import "context"

// Adapter loads the two sides of a reconciliation.
type Adapter interface {
	// Name identifies the adapter; it keys the index cache.
	Name() string

	// LoadDBIndex returns every stored collection keyed by id.
	LoadDBIndex(ctx context.Context) (map[string]Entry, error)

	// LoadStorageIndex returns the archived plan ids keyed by collection id.
	LoadStorageIndex(ctx context.Context) (map[string][]string, error)
}

// Mutator is implemented by adapters that can purge archived plans.
type Mutator interface {
	DeletePlan(ctx context.Context, collectionID, planID string) error
}
