package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/illumination-k/token-helper/pkg/provisioning"
)

func newAutoCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "auto <provisioning-id>",
		Short: "Log in, wait for a fresh token and write it to both files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuto(cmd, opts, args[0])
		},
	}
}

func runAuto(cmd *cobra.Command, opts *options, rawID string) error {
	if strings.TrimSpace(rawID) == "" {
		return fmt.Errorf("usage: token-helper --auto <provisioning-id>: %w", provisioning.ErrEmptyID)
	}

	e, err := opts.bootstrap(cmd)
	if err != nil {
		return err
	}
	p := e.printer

	p.Info("🤖 Auto mode")
	p.Info("📌 Provisioning ID: %s", strings.TrimSpace(rawID))
	p.Progress("Logging in and waiting %s for the panel to issue a token...", e.cfg.AutoDelay)

	token, err := e.svc.AutoUpdate(cmd.Context(), rawID)
	if err != nil {
		return fmt.Errorf("auto mode failed: %w", err)
	}

	p.Success("Token fetched and written to both files")
	p.Print("%s", token)
	return nil
}
