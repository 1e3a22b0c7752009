package reconcile

import (
	"context"
	"fmt"
	"sort"
)

// ReconcileAll performs a full reconciliation across all collections.
func ReconcileAll(ctx context.Context, spec *Spec) ([]Result, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}
	return reconcileFromCache(cache), nil
}

// ReconcileOne reconciles a single collection using cached indices.
func ReconcileOne(ctx context.Context, spec *Spec, id string) (*Result, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}

	_, inDB := cache.DBIndex[id]
	_, inStorage := cache.StorageIndex[id]
	if !inDB && !inStorage {
		return nil, fmt.Errorf("collection %s not found in any source", id)
	}

	result := buildResult(id, cache)
	return &result, nil
}

func reconcileFromCache(cache *Cache) []Result {
	union := make(map[string]struct{}, len(cache.DBIndex)+len(cache.StorageIndex))
	for key := range cache.DBIndex {
		union[key] = struct{}{}
	}
	for key := range cache.StorageIndex {
		union[key] = struct{}{}
	}

	results := make([]Result, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, cache))
	}

	// Sort for deterministic output
	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})

	return results
}

func buildResult(key string, cache *Cache) Result {
	entry, dbPresent := cache.DBIndex[key]
	plans, storagePresent := cache.StorageIndex[key]

	result := Result{
		ID:             key,
		DBPresent:      dbPresent,
		StoragePresent: storagePresent,
		Archived:       len(plans),
		Mismatch:       []string{},
	}

	if dbPresent {
		result.Name = entry.Name
		result.Revision = entry.Revision
		if want := entry.ExpectedPlans(); want != len(plans) {
			result.Mismatch = append(result.Mismatch, fmt.Sprintf("plans: archived=%d expected=%d", len(plans), want))
		}
	}

	return result
}
