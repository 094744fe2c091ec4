package cli

import (
	"github.com/spf13/cobra"
)

// newCheckoutCmd creates the checkout command
func newCheckoutCmd(getCtx contextFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "checkout <revision>",
		Short:   "Force the working copy to a revision, discarding local changes",
		Aliases: []string{"co"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := getCtx()
			ctx, cancel := rt.CommandContext(cmd.Context())
			defer cancel()

			if err := rt.Repo.Checkout(ctx, args[0]); err != nil {
				return err
			}
			rt.Splog.Info("Checked out %s.", args[0])
			return nil
		},
	}
}
