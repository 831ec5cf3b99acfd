// Package web serves the single-page token management UI.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/illumination-k/token-helper/pkg/config"
	"github.com/illumination-k/token-helper/pkg/login"
	"github.com/illumination-k/token-helper/pkg/tokeninfo"
)

// TokenWorkflow is the subset of the token service used by the UI.
type TokenWorkflow interface {
	GetCurrentToken(ctx context.Context) string
	UpdateTokenManually(ctx context.Context, token string) error
	UpdateTokenFromDatabase(ctx context.Context, id string) (string, error)
	PerformLogin(ctx context.Context, id, section, locale string) (*login.Result, error)
	InspectCurrentToken(ctx context.Context) (*tokeninfo.Info, error)
}

// Server is the HTTP front end.
type Server struct {
	echo     *echo.Echo
	svc      TokenWorkflow
	cfg      config.AppConfig
	renderer Renderer
}

// NewServer creates a server with its routes and middleware registered.
// A nil renderer uses the embedded templates.
func NewServer(svc TokenWorkflow, cfg config.AppConfig, renderer Renderer) *Server {
	if renderer == nil {
		renderer = NewPlaceholderRenderer(nil)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		svc:      svc,
		cfg:      cfg,
		renderer: renderer,
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/healthz"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.GET("/", s.handleIndex)
	e.POST("/", s.handleAction)
	e.GET("/healthz", s.handleHealth)

	return s
}

// ServeHTTP makes the server usable with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start(addr string) error {
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
