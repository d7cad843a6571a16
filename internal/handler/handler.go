// Package handler is the HTTP layer. Handlers receive requests that the
// shared pipeline in base.go already bound and validated, call the
// service layer and return the value to serialize.
package handler
