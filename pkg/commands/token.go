package commands

import (
	"github.com/spf13/cobra"
)

func newGetCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the current token and its decoded claims",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			p := e.printer

			token := e.svc.GetCurrentToken(cmd.Context())
			if token == "" {
				p.Warning("No token found in %s or %s", e.svc.JSONPath(), e.svc.JSPath())
				return nil
			}
			p.Print("%s", token)

			info, err := e.svc.InspectCurrentToken(cmd.Context())
			if err != nil {
				p.Warning("Token claims could not be decoded: %v", err)
				return nil
			}
			p.Print("")
			p.Print("%s", info.Summary())
			return nil
		},
	}
}

func newSetCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <token>",
		Short: "Write a token to both files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}

			if err := e.svc.UpdateTokenManually(cmd.Context(), args[0]); err != nil {
				return err
			}
			e.printer.Success("Token updated in both files")
			return nil
		},
	}
}
