// Package redact hides secrets in messages that may reach logs or users.
package redact

import (
	"slices"
	"strings"
	"sync"
)

// Placeholder replaces every registered secret.
const Placeholder = "[REDACTED]"

// Redactor replaces registered secrets in text and errors
type Redactor struct {
	secrets map[string]struct{}
	mu      sync.RWMutex
}

// New creates a redactor for the given secrets. Empty secrets are ignored.
func New(secrets ...string) *Redactor {
	r := &Redactor{
		secrets: make(map[string]struct{}),
	}
	for _, s := range secrets {
		r.Add(s)
	}
	return r
}

// Add registers a secret
func (r *Redactor) Add(secret string) {
	if secret == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.secrets[secret] = struct{}{}
}

// String replaces all registered secrets with Placeholder. Longer secrets
// are replaced first so a secret containing another is hidden whole.
func (r *Redactor) String(text string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ordered := make([]string, 0, len(r.secrets))
	for s := range r.secrets {
		ordered = append(ordered, s)
	}
	slices.SortFunc(ordered, func(a, b string) int {
		return len(b) - len(a)
	})

	for _, s := range ordered {
		text = strings.ReplaceAll(text, s, Placeholder)
	}
	return text
}

// Error returns err with a redacted message. The result still unwraps to
// err, so errors.Is and errors.As keep working. Errors without secrets are
// returned unchanged.
func (r *Redactor) Error(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	redacted := r.String(msg)
	if redacted == msg {
		return err
	}
	return &redactedError{msg: redacted, err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }
