// Package validation binds request data and validates it.
//
// Payloads validate themselves, usually with `validator` struct tags,
// and failures are turned into a 400 errs.HTTPError with field level
// errors the client can act on.
package validation
