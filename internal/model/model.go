// Package model holds the storefront entities as they are stored and
// returned, plus the request payloads the handlers bind into.
//
// Stored rows are serialized with snake_case keys. Bulk import payloads
// keep the camelCase names the admin frontend sends.
package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/deppfellow/storefront/internal/errs"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Base carries the columns every table shares.
type Base struct {
	ID        int64     `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Field is a JSON field that distinguishes "absent" from "null".
//
// Set is true whenever the key was present in the document, Null when its
// value was the JSON literal null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Null = true
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// Arg returns the value to bind for the column, nil when cleared.
func (f Field[T]) Arg() any {
	if f.Null {
		return nil
	}
	return f.Value
}

// Changes is a column -> value set for a sparse update.
type Changes map[string]any

func trim(s string) string {
	return strings.TrimSpace(s)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// blankFields rejects update values that were sent but are empty after
// trimming. names and values are parallel.
func blankFields(names []string, values ...*string) error {
	var fieldErrors []errs.FieldError
	var blank []string
	for i, v := range values {
		if v != nil && *v == "" {
			blank = append(blank, names[i])
			fieldErrors = append(fieldErrors, errs.FieldError{Field: names[i], Error: "cannot be empty"})
		}
	}
	if len(blank) == 0 {
		return nil
	}
	return errs.NewBadRequestError("Fields cannot be empty: "+strings.Join(blank, ", "), true, nil, fieldErrors)
}

// jsonArg binds raw JSON to a jsonb column; empty documents and the
// literal null become SQL NULL.
func jsonArg(raw json.RawMessage) any {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return string(raw)
}
