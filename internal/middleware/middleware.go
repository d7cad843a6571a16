// Package middleware holds the echo middleware shared by every route:
// the CORS envelope, request ids, caller identity, request-scoped
// logging, New Relic tracing, panic recovery and the global error
// handler.
package middleware
