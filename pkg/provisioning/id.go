// Package provisioning defines the provisioning identifier that links a
// provisioned product to its panel user and token.
package provisioning

import (
	"errors"
	"strconv"
	"strings"
)

// ErrEmptyID is returned by Parse for blank input.
var ErrEmptyID = errors.New("provisioning ID cannot be empty")

// ID is an opaque provisioning identifier. It is usually numeric but any
// non-empty string is accepted.
type ID string

// Parse trims s and rejects empty identifiers.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyID
	}
	return ID(s), nil
}

// String returns the identifier as sent in the login form.
func (id ID) String() string {
	return string(id)
}

// Value returns the SQL parameter for the identifier: an int64 when the
// identifier is an integer, the string otherwise.
func (id ID) Value() any {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return n
	}
	return string(id)
}
