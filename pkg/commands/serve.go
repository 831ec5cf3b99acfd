package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/illumination-k/token-helper/pkg/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI (default when no command is given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *options) error {
	e, err := opts.bootstrap(cmd)
	if err != nil {
		return err
	}
	p := e.printer

	p.Info("🚀 Starting web server on http://0.0.0.0:%d", e.cfg.Port)
	p.Print("📁 Configured files:")
	p.Print("   • JSON: %s", e.svc.JSONPath())
	p.Print("   • JS: %s", e.svc.JSPath())
	for _, warning := range e.svc.ValidatePaths() {
		p.Warning("%s", warning)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(e.svc, e.cfg, nil)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start(e.cfg.ListenAddress())
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		if err := e.svc.WatchTokenFiles(gCtx); err != nil {
			slog.Warn("token file watcher stopped", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	p.Print("\n🛑 Server stopped")
	return nil
}
