package application

import (
	"log/slog"

	"github.com/illumination-k/token-helper/pkg/application/port"
	"github.com/illumination-k/token-helper/pkg/application/service"
	"github.com/illumination-k/token-helper/pkg/config"
	"github.com/illumination-k/token-helper/pkg/login"
	"github.com/illumination-k/token-helper/pkg/tokendb"
	"github.com/illumination-k/token-helper/pkg/tokenfile"
)

// Concrete adapters satisfy the ports.
var (
	_ port.TokenStore  = (*tokenfile.Store)(nil)
	_ port.TokenLookup = (*tokendb.Repository)(nil)
	_ port.LoginProber = (*login.Prober)(nil)
)

// App holds all application services and dependencies
type App struct {
	Config       config.AppConfig
	TokenService *service.TokenService
}

// NewApp creates and wires up the entire application with all dependencies
func NewApp(cfg config.AppConfig, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	store := tokenfile.NewStore(cfg.JSONPath, cfg.JSPath, logger.With("component", "tokenfile"))
	lookup := tokendb.NewRepository(cfg.Database, logger.With("component", "tokendb"))
	prober := login.NewProber(cfg.LoginURL, logger.With("component", "login"))

	tokenService := service.NewTokenService(
		store,
		lookup,
		prober,
		cfg.AutoDelay,
		logger.With("component", "service"),
	)

	return &App{
		Config:       cfg,
		TokenService: tokenService,
	}
}
