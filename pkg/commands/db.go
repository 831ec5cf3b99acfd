package commands

import (
	"github.com/spf13/cobra"
)

func newDBCommand(opts *options) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "db <provisioning-id>",
		Short: "Fetch the newest token for a provisioning ID from the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			p := e.printer

			p.Progress("Querying %s for provisioning ID %s...", e.cfg.Database.Address(), args[0])

			var token string
			if write {
				token, err = e.svc.UpdateTokenFromDatabase(cmd.Context(), args[0])
			} else {
				token, err = e.svc.GetTokenFromDatabase(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			if write {
				p.Success("Token written to both files")
			}
			p.Print("%s", token)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Also write the token to both files")

	return cmd
}
