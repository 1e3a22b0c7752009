// Package logger provides structured logging based on Zap.
//
// New builds a development logger for the debug level and a production
// logger otherwise, encoded as json or console.
//
// # Request correlation
//
// The rayid middleware stores a per-request id under RayIDKey. WithRayID
// attaches it to a logger so every entry of one request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Submit failed", zap.Error(err))
package logger
