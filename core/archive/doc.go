// Package archive stores finalized plan documents in object storage.
//
// Plans are written as JSON objects under
//
//	<prefix>/<collection-id>/<plan-id>.json
//
// so the history of a collection can be listed with a single prefix scan.
// Concurrent reads of the same plan are coalesced with singleflight.
package archive
