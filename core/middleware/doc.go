// Package middleware groups the HTTP middleware of the Fiber application.
//
//   - auth: API key validation.
//   - rayid: per-request correlation id, exposed in the X-Ray-ID header and
//     picked up by logger.WithRayID.
package middleware
