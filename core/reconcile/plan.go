package reconcile

import (
	"context"
	"errors"
	"fmt"
)

// ReconcileWithPlan reconciles and returns the results with planned actions.
// It does not execute anything; use ApplyPlan for that.
func ReconcileWithPlan(ctx context.Context, spec *Spec, opts Options) (*Plan, error) {
	cache, err := GetOrBuildCache(ctx, spec)
	if err != nil {
		return nil, err
	}

	results := reconcileFromCache(cache)
	summary, actions := buildPlan(results, cache, opts)

	return &Plan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the actions of a plan and returns how many plans were
// deleted. Nothing runs unless opts.Confirmed is set and opts.DryRun is not.
// The cache is invalidated after any mutation.
func ApplyPlan(ctx context.Context, spec *Spec, plan *Plan, opts Options) (int, error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	mutator, ok := spec.Adapter.(Mutator)
	if !ok {
		return 0, fmt.Errorf("adapter %s does not implement Mutator interface", spec.Adapter.Name())
	}

	executed := 0
	defer func() {
		if executed > 0 {
			InvalidateCache(spec)
		}
	}()

	var errs []error
	for _, action := range plan.Actions {
		if action.Type != ActionPurgePlans {
			continue
		}
		for _, planID := range action.Plans {
			if err := ctx.Err(); err != nil {
				return executed, err
			}
			if err := mutator.DeletePlan(ctx, action.Key, planID); err != nil {
				errs = append(errs, err)
				continue
			}
			executed++
		}
	}
	return executed, errors.Join(errs...)
}

// ReconcileAndApply plans and, when confirmed, applies in one call.
func ReconcileAndApply(ctx context.Context, spec *Spec, opts Options) (*Plan, int, error) {
	plan, err := ReconcileWithPlan(ctx, spec, opts)
	if err != nil {
		return nil, 0, err
	}
	executed, err := ApplyPlan(ctx, spec, plan, opts)
	return plan, executed, err
}

func buildPlan(results []Result, cache *Cache, opts Options) (Summary, []Action) {
	summary := Summary{TotalCollections: len(results)}
	actions := []Action{}

	for _, r := range results {
		if len(r.Mismatch) > 0 {
			summary.Mismatches++
		}
		if r.DBPresent && !r.StoragePresent && cache.DBIndex[r.ID].ExpectedPlans() > 0 {
			summary.MissingStorage++
		}
		if r.StoragePresent && !r.DBPresent {
			summary.Orphaned++
			if opts.DoPurge {
				actions = append(actions, Action{
					Type:   ActionPurgePlans,
					Key:    r.ID,
					Plans:  cache.StorageIndex[r.ID],
					Reason: "collection missing in database",
				})
			}
		}
	}

	summary.PurgeActions = len(actions)
	return summary, actions
}
