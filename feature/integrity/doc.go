// Package integrity provides infrastructure health checks.
//
// # Checks Provided
//
//   - Storage: the archive bucket exists; reports how many plans it holds.
//   - Database: the collections table carries every column of the
//     collection model, with compatible types.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
//   - GET /integrity/database : Runs the schema check.
package integrity
