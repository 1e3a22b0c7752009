// Package collection serves sectioned collections that are edited in batches.
//
// A collection is an ordered list of sections, each an ordered list of item
// keys. Clients submit batches of section and item edits against the
// revision they last saw. The service derives the old per-section counts from
// the stored layout, validates and coalesces the batch with core/changeset,
// replays it onto the layout (new items receive fresh uuid keys), stores the
// result under the next revision and archives the rendered plan.
//
// # HTTP Endpoints
//
//   - POST /collections : Create a collection from per-section counts.
//   - GET /collections : List collections.
//   - GET /collections/:id : Fetch a collection with its layout.
//   - POST /collections/:id/batches : Submit a batch (JSON or YAML).
//   - GET /collections/:id/batches : List archived plan ids.
//   - GET /collections/:id/batches/:plan : Fetch an archived plan.
//
// Rejected batches answer 422, stale revisions 409 and unknown ids 404.
package collection
