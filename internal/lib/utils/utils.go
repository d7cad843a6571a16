// Package utils holds small helpers for the command line tooling.
package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
)

// PrintJSON writes v to w as tab-indented JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}

// MaskDSN replaces the password of a connection URL with "xxxxx". Strings
// that do not parse as URLs are masked entirely.
func MaskDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "xxxxx"
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

// Mask hides a secret, keeping only whether it was set.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "xxxxx"
}
