// Package tokeninfo decodes the claims of a panel token for display.
//
// Tokens are never verified here: the helper has no access to the signing
// key, and the claims are only shown to the operator.
package tokeninfo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

// ErrEmptyToken is returned by Decode for a blank token.
var ErrEmptyToken = errors.New("token is empty")

// Info holds the registered claims of a token. Zero times mean the claim is absent.
type Info struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Expired   bool
}

// Decode parses token without verifying its signature. A leading "Bearer "
// is ignored. now is used to compute Expired.
func Decode(token string, now time.Time) (*Info, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), bearerPrefix))
	if raw == "" {
		return nil, ErrEmptyToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}

	info := &Info{}
	var err error
	if info.Subject, err = claims.GetSubject(); err != nil {
		return nil, fmt.Errorf("invalid sub claim: %w", err)
	}
	if info.Issuer, err = claims.GetIssuer(); err != nil {
		return nil, fmt.Errorf("invalid iss claim: %w", err)
	}
	if iat, err := claims.GetIssuedAt(); err != nil {
		return nil, fmt.Errorf("invalid iat claim: %w", err)
	} else if iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	} else if exp != nil {
		info.ExpiresAt = exp.Time
		info.Expired = !now.Before(exp.Time)
	}

	return info, nil
}

// Summary renders Info as "key: value" lines, skipping absent claims.
func (i *Info) Summary() string {
	var lines []string
	if i.Subject != "" {
		lines = append(lines, "subject: "+i.Subject)
	}
	if i.Issuer != "" {
		lines = append(lines, "issuer: "+i.Issuer)
	}
	if !i.IssuedAt.IsZero() {
		lines = append(lines, "issued at: "+i.IssuedAt.UTC().Format(time.RFC3339))
	}
	if !i.ExpiresAt.IsZero() {
		status := "valid"
		if i.Expired {
			status = "expired"
		}
		lines = append(lines, fmt.Sprintf("expires at: %s (%s)", i.ExpiresAt.UTC().Format(time.RFC3339), status))
	}
	if len(lines) == 0 {
		return "no registered claims"
	}
	return strings.Join(lines, "\n")
}
