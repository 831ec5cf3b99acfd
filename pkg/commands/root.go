package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/illumination-k/token-helper/internal/version"
	"github.com/illumination-k/token-helper/pkg/application"
	"github.com/illumination-k/token-helper/pkg/application/service"
	"github.com/illumination-k/token-helper/pkg/config"
	"github.com/illumination-k/token-helper/pkg/env"
)

// options carries the collaborators shared by every command.
type options struct {
	stdout     io.Writer
	stderr     io.Writer
	useColors  bool
	newService func(cfg config.AppConfig, logger *slog.Logger) *service.TokenService
}

func defaultOptions() *options {
	return &options{
		stdout: os.Stdout,
		stderr: os.Stderr,
		newService: func(cfg config.AppConfig, logger *slog.Logger) *service.TokenService {
			return application.NewApp(cfg, logger).TokenService
		},
	}
}

// NewRootCommand creates the root command for token-helper
func NewRootCommand() *cobra.Command {
	opts := defaultOptions()
	opts.useColors = resolveColors()
	return newRootCommand(opts)
}

func newRootCommand(opts *options) *cobra.Command {
	var autoID string

	cmd := &cobra.Command{
		Use:   "token-helper",
		Short: "Keep the panel token of the local HTTP client files in sync",
		Long: `token-helper keeps the JWT used by the local HTTP client environment file and the
front-end config.js in sync with the panel database.

Without arguments it starts the web UI. With --auto <provisioning-id> it logs in,
waits for the panel to issue a token, copies the newest token into both files and exits.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("auto") {
				return runAuto(cmd, opts, autoID)
			}
			return runServe(cmd, opts)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringSlice("env-file", []string{env.DefaultDotenvFile}, "dotenv file to load before reading the environment (repeatable)")

	cmd.Flags().StringVar(&autoID, "auto", "", "Run the auto update for this provisioning ID and exit")

	// Add subcommands
	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newAutoCommand(opts))
	cmd.AddCommand(newGetCommand(opts))
	cmd.AddCommand(newSetCommand(opts))
	cmd.AddCommand(newDBCommand(opts))
	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newVersionCommand(opts))

	return cmd
}

func newVersionCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(opts.stdout, "token-helper version %s\n", version.Version)
		},
	}
}
