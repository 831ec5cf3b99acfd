package commands

import (
	"github.com/spf13/cobra"

	"github.com/illumination-k/token-helper/pkg/login"
)

func newLoginCommand(opts *options) *cobra.Command {
	var section, locale string

	cmd := &cobra.Command{
		Use:   "login <provisioning-id>",
		Short: "Post the panel login form and print the response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}

			e.printer.Progress("Posting login form to %s...", e.cfg.LoginURL)
			result, err := e.svc.PerformLogin(cmd.Context(), args[0], section, locale)
			if err != nil {
				return err
			}
			e.printer.Print("%s", result.Format())
			return nil
		},
	}

	cmd.Flags().StringVar(&section, "section", login.DefaultSection, "Panel section to open")
	cmd.Flags().StringVar(&locale, "locale", login.DefaultLocale, "Panel locale")

	return cmd
}
