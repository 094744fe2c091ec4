package cli

import (
	"github.com/spf13/cobra"
)

// newDiffCmd creates the diff command
func newDiffCmd(getCtx contextFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <from> <to>",
		Short: "Show the diff between two revisions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := getCtx()
			ctx, cancel := rt.CommandContext(cmd.Context())
			defer cancel()

			diff, err := rt.Repo.Diff(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			rt.Formatter.Text(diff)
			return nil
		},
	}
}
