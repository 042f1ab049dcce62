// Package middlewares provides net/http middleware for the exammail web UI.
//
// # Request ID
//
// RequestID assigns an ID to each request. An ID sent by a proxy in one of
// the configured headers is kept, otherwise a UUID is generated. The ID is
// stored in the request context and echoed in X-Request-ID:
//
//	r.Use(middlewares.RequestID())
//
// Pass RequestIDExtractor to the logger so every log line carries it:
//
//	log := logger.New(logger.WithExtractors(middlewares.RequestIDExtractor()))
//
// # Recover
//
// Recover turns a panic into a logged *PanicError and a 500 response:
//
//	r.Use(middlewares.Recover(log))
//
// # Access log
//
// AccessLog logs method, path, status, size and duration of each request:
//
//	r.Use(middlewares.AccessLog(log))
package middlewares
