// Package reconcile compares the collections stored in the database with the
// plans archived in object storage.
//
// Every successful submission bumps a collection's revision and archives one
// plan, so a collection at revision r is expected to own r-1 archived plans.
// The engine builds both indices concurrently, takes the union of their
// collection ids and reports, per collection:
//
//   - whether it exists in the database and in the archive
//   - a mismatch when the archived plan count differs from the expected one
//
// Plans whose collection no longer exists in the database are orphans. A
// reconcile plan lists them as purge actions, which ApplyPlan executes only
// when confirmed and not in dry-run mode.
//
// # Usage Example
//
//	spec := &reconcile.Spec{Adapter: adapter, CacheTTL: time.Minute}
//
//	plan, err := reconcile.ReconcileWithPlan(ctx, spec, reconcile.Options{DoPurge: true})
//	executed, err := reconcile.ApplyPlan(ctx, spec, plan, reconcile.Options{DoPurge: true, Confirmed: true})
package reconcile
