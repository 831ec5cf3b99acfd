package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/illumination-k/token-helper/internal/logger"
	"github.com/illumination-k/token-helper/pkg/application/service"
	"github.com/illumination-k/token-helper/pkg/config"
	"github.com/illumination-k/token-helper/pkg/env"
	"github.com/illumination-k/token-helper/pkg/output"
)

// errInvalidConfig is returned when validation reports a fatal problem.
var errInvalidConfig = errors.New("invalid configuration")

// cliEnv is what a command needs after configuration has been loaded.
type cliEnv struct {
	cfg     config.AppConfig
	svc     *service.TokenService
	printer *output.Printer
}

func resolveColors() bool {
	return output.ResolveColors(os.Stdout)
}

// bootstrap loads dotenv files, builds and validates the configuration,
// installs the logger and wires the token service.
func (o *options) bootstrap(cmd *cobra.Command) (*cliEnv, error) {
	printer := output.NewPrinterTo(o.stdout, o.stderr, o.useColors)

	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	if err := env.Load(envFiles); err != nil {
		return nil, fmt.Errorf("failed to load dotenv files: %w", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Init(cfg.LogLevel, o.stderr)
	log.Debug("configuration loaded",
		"json_path", cfg.JSONPath,
		"js_path", cfg.JSPath,
		"port", cfg.Port,
		"database", cfg.Database.RedactedURL())

	problems := cfg.Validate()
	for _, p := range problems {
		if p.Fatal {
			printer.Error("%s", p)
		} else {
			printer.Warning("%s", p)
		}
	}
	if config.HasFatal(problems) {
		return nil, errInvalidConfig
	}

	return &cliEnv{
		cfg:     cfg,
		svc:     o.newService(cfg, log),
		printer: printer,
	}, nil
}
