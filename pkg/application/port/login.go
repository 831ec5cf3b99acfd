package port

import (
	"context"

	"github.com/illumination-k/token-helper/pkg/login"
	"github.com/illumination-k/token-helper/pkg/provisioning"
)

// LoginProber abstracts the panel login call for testing
type LoginProber interface {
	// Probe posts the login form for id. Empty section and locale use the
	// prober defaults.
	Probe(ctx context.Context, id provisioning.ID, section, locale string) (*login.Result, error)
}
