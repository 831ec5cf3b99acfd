package port

import (
	"context"

	"github.com/illumination-k/token-helper/pkg/provisioning"
)

// TokenStore handles persistence of the token in the local client files
type TokenStore interface {
	// ReadCurrentToken returns the stored token, or "" when none is found
	ReadCurrentToken() string

	// WriteToken writes the token to every client file
	WriteToken(token string) error

	// ValidatePaths returns a warning for each configured file that does not exist
	ValidatePaths() []string

	// Watch reports external changes to the token files until ctx is done
	Watch(ctx context.Context, onChange func(path string)) error

	// JSONPath returns the path of the HTTP client environment file
	JSONPath() string

	// JSPath returns the path of the JS config file
	JSPath() string
}

// TokenLookup reads issued tokens from the panel database
type TokenLookup interface {
	// FetchLatestToken returns the owning username and the bearer token of
	// the most recently refreshed token for id
	FetchLatestToken(ctx context.Context, id provisioning.ID) (username, token string, err error)
}
