// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber app from this Config: the listen port,
// the optional API key enforced by the auth middleware, and the body size
// limit applied to batch submissions.
package server
