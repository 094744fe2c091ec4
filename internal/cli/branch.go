package cli

import (
	"errors"

	"github.com/spf13/cobra"

	gitwraperrors "gitwrap.dev/gitwrap/pkg/errors"
)

// newBranchCmd creates the branch command
func newBranchCmd(getCtx contextFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "branch",
		Short: "Print the current branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := getCtx()
			ctx, cancel := rt.CommandContext(cmd.Context())
			defer cancel()

			branch, err := rt.Repo.CurrentBranch(ctx)
			if errors.Is(err, gitwraperrors.ErrNotOnBranch) {
				rt.Splog.Warn("HEAD is detached.")
				return err
			}
			if err != nil {
				return err
			}
			rt.Formatter.Text(branch)
			return nil
		},
	}
}
