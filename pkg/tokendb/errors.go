package tokendb

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no row matches the provisioning ID.
	ErrNotFound = errors.New("no token found for the given provisioning ID")

	// ErrNoToken is matched by NoTokenError.
	ErrNoToken = errors.New("user has no token")
)

// NoTokenError reports a matched user whose token column is null or empty.
type NoTokenError struct {
	Username string
}

func (e *NoTokenError) Error() string {
	return fmt.Sprintf("user %s has no ACUT_JWT_TOKEN", e.Username)
}

// Is makes errors.Is(err, ErrNoToken) true.
func (e *NoTokenError) Is(target error) bool {
	return target == ErrNoToken
}

// ConnectionError wraps a connectivity or driver failure with the settings
// an operator needs to diagnose it. It never carries the password.
type ConnectionError struct {
	Address  string
	Database string
	Login    string
	Err      error
}

func (e *ConnectionError) Error() string {
	var b strings.Builder
	b.WriteString("could not query SQL Server\n")
	fmt.Fprintf(&b, "  host:     %s\n", e.Address)
	fmt.Fprintf(&b, "  database: %s\n", e.Database)
	fmt.Fprintf(&b, "  user:     %s\n", e.Login)
	fmt.Fprintf(&b, "  error:    %v\n", e.Err)
	b.WriteString("check that:\n")
	b.WriteString("  1. the VPN is connected\n")
	b.WriteString("  2. the credentials in .env are correct\n")
	b.WriteString("  3. the user has permissions on the database")
	return b.String()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
