package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/illumination-k/token-helper/pkg/application/port"
	"github.com/illumination-k/token-helper/pkg/login"
	"github.com/illumination-k/token-helper/pkg/provisioning"
	"github.com/illumination-k/token-helper/pkg/tokeninfo"
)

// ErrEmptyToken is returned when a manual update is given a blank token.
var ErrEmptyToken = errors.New("token cannot be empty")

// TokenService provides the token workflows using dependency injection.
// Operations are serialized: at most one file write, database query or
// login probe runs at a time.
type TokenService struct {
	store     port.TokenStore
	lookup    port.TokenLookup
	prober    port.LoginProber
	autoDelay time.Duration
	logger    *slog.Logger

	sem   *semaphore.Weighted
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewTokenService creates a new TokenService with injected dependencies.
// autoDelay is the wait between the login probe and the database lookup in
// AutoUpdate.
func NewTokenService(
	store port.TokenStore,
	lookup port.TokenLookup,
	prober port.LoginProber,
	autoDelay time.Duration,
	logger *slog.Logger,
) *TokenService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenService{
		store:     store,
		lookup:    lookup,
		prober:    prober,
		autoDelay: autoDelay,
		logger:    logger,
		sem:       semaphore.NewWeighted(1),
		now:       time.Now,
		sleep:     sleepContext,
	}
}

// JSONPath returns the path of the HTTP client environment file
func (s *TokenService) JSONPath() string {
	return s.store.JSONPath()
}

// JSPath returns the path of the JS config file
func (s *TokenService) JSPath() string {
	return s.store.JSPath()
}

// ValidatePaths returns a warning for every token file that does not exist.
func (s *TokenService) ValidatePaths() []string {
	return s.store.ValidatePaths()
}

// GetCurrentToken returns the stored token, or "" when none is stored or ctx
// is cancelled while waiting for another operation.
func (s *TokenService) GetCurrentToken(ctx context.Context) string {
	var token string
	_ = s.run(ctx, "get_current_token", func(*slog.Logger) error {
		token = s.store.ReadCurrentToken()
		return nil
	})
	return token
}

// UpdateTokenManually writes token to both files after trimming it.
func (s *TokenService) UpdateTokenManually(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	return s.run(ctx, "update_token_manually", func(logger *slog.Logger) error {
		if err := s.store.WriteToken(token); err != nil {
			return fmt.Errorf("failed to write token: %w", err)
		}
		logger.Info("token files updated", "source", "manual")
		return nil
	})
}

// GetTokenFromDatabase returns the latest bearer token for id without
// touching the files.
func (s *TokenService) GetTokenFromDatabase(ctx context.Context, rawID string) (string, error) {
	id, err := provisioning.Parse(rawID)
	if err != nil {
		return "", err
	}

	var token string
	err = s.run(ctx, "get_token_from_database", func(logger *slog.Logger) error {
		token, err = s.fetch(ctx, logger, id)
		return err
	})
	return token, err
}

// UpdateTokenFromDatabase fetches the latest token for id, writes it to both
// files and returns it.
func (s *TokenService) UpdateTokenFromDatabase(ctx context.Context, rawID string) (string, error) {
	id, err := provisioning.Parse(rawID)
	if err != nil {
		return "", err
	}

	var token string
	err = s.run(ctx, "update_token_from_database", func(logger *slog.Logger) error {
		token, err = s.updateFromDatabase(ctx, logger, id)
		return err
	})
	return token, err
}

// PerformLogin posts the panel login form for id.
func (s *TokenService) PerformLogin(ctx context.Context, rawID, section, locale string) (*login.Result, error) {
	id, err := provisioning.Parse(rawID)
	if err != nil {
		return nil, err
	}

	var result *login.Result
	err = s.run(ctx, "perform_login", func(logger *slog.Logger) error {
		result, err = s.prober.Probe(ctx, id, section, locale)
		if err != nil {
			return err
		}
		logger.Info("login probe finished", "status", result.Status)
		return nil
	})
	return result, err
}

// AutoUpdate logs in for id so the panel issues a fresh token, waits the
// configured delay and then copies the newest token into the files.
//
// The delay is a heuristic: a panel slower than autoDelay yields the
// previous token.
func (s *TokenService) AutoUpdate(ctx context.Context, rawID string) (string, error) {
	id, err := provisioning.Parse(rawID)
	if err != nil {
		return "", err
	}

	var token string
	err = s.run(ctx, "auto_update", func(logger *slog.Logger) error {
		result, err := s.prober.Probe(ctx, id, "", "")
		if err != nil {
			return err
		}
		logger.Info("login probe finished", "status", result.Status)

		logger.Debug("waiting for the panel to issue a token", "delay", s.autoDelay)
		if err := s.sleep(ctx, s.autoDelay); err != nil {
			return err
		}

		token, err = s.updateFromDatabase(ctx, logger, id)
		return err
	})
	return token, err
}

// InspectCurrentToken decodes the claims of the stored token.
func (s *TokenService) InspectCurrentToken(ctx context.Context) (*tokeninfo.Info, error) {
	var info *tokeninfo.Info
	err := s.run(ctx, "inspect_current_token", func(*slog.Logger) error {
		var err error
		info, err = tokeninfo.Decode(s.store.ReadCurrentToken(), s.now())
		return err
	})
	return info, err
}

// WatchTokenFiles logs external edits of the token files until ctx is done.
// It does not take the operation lock.
func (s *TokenService) WatchTokenFiles(ctx context.Context) error {
	return s.store.Watch(ctx, func(path string) {
		s.logger.Info("token file changed", "path", path)
	})
}

func (s *TokenService) fetch(ctx context.Context, logger *slog.Logger, id provisioning.ID) (string, error) {
	username, token, err := s.lookup.FetchLatestToken(ctx, id)
	if err != nil {
		return "", err
	}
	logger.Info("token fetched from database", "provisioning_id", id.String(), "username", username)
	return token, nil
}

func (s *TokenService) updateFromDatabase(ctx context.Context, logger *slog.Logger, id provisioning.ID) (string, error) {
	token, err := s.fetch(ctx, logger, id)
	if err != nil {
		return "", err
	}
	if err := s.store.WriteToken(token); err != nil {
		return "", fmt.Errorf("failed to write token: %w", err)
	}
	logger.Info("token files updated", "source", "database")
	return token, nil
}

// run executes fn while holding the operation lock, tagging its logs with a
// fresh operation id.
func (s *TokenService) run(ctx context.Context, operation string, fn func(logger *slog.Logger) error) error {
	logger := s.logger.With("operation", operation, "operation_id", uuid.NewString())

	if err := s.sem.Acquire(ctx, 1); err != nil {
		logger.Warn("operation cancelled while waiting", "error", err)
		return err
	}
	defer s.sem.Release(1)

	start := time.Now()
	err := fn(logger)
	if err != nil {
		logger.Error("operation failed", "error", err, "duration", time.Since(start))
		return err
	}
	logger.Debug("operation finished", "duration", time.Since(start))
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
