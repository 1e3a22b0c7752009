package integrity

import (
	"context"

	"changeset-manager/core/archive"
	"changeset-manager/core/reconcile"
	"changeset-manager/feature/collection"
)

// archiveAdapter reconciles stored collections with archived plans.
type archiveAdapter struct {
	repo  *collection.Repository
	store *archive.Store
}

func (a *archiveAdapter) Name() string {
	return "archive|" + a.store.Bucket()
}

func (a *archiveAdapter) LoadDBIndex(ctx context.Context) (map[string]reconcile.Entry, error) {
	list, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]reconcile.Entry, len(list))
	for _, c := range list {
		index[c.ID] = reconcile.Entry{Name: c.Name, Revision: c.Revision}
	}
	return index, nil
}

func (a *archiveAdapter) LoadStorageIndex(ctx context.Context) (map[string][]string, error) {
	return a.store.Index(ctx)
}

func (a *archiveAdapter) DeletePlan(ctx context.Context, collectionID, planID string) error {
	return a.store.Delete(ctx, collectionID, planID)
}
