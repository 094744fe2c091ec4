package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitwrap.dev/gitwrap/pkg/git"
)

// newLogCmd creates the log command
func newLogCmd(getCtx contextFunc) *cobra.Command {
	var (
		reverse  bool
		maxCount int
	)

	cmd := &cobra.Command{
		Use:     "log",
		Short:   "Show non-merge commits, newest first",
		Aliases: []string{"l"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := getCtx()
			order := git.Descending
			if reverse {
				order = git.Ascending
			}

			ctx, cancel := rt.CommandContext(cmd.Context())
			defer cancel()

			revisions, err := rt.Repo.ListRevisions(ctx, order, maxCount)
			if err != nil {
				return fmt.Errorf("failed to list revisions: %w", err)
			}
			rt.Splog.Debug("listed %d revisions (%s)", len(revisions), order)
			rt.Formatter.Revisions(revisions)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reverse, "reverse", false, "Show oldest commits first")
	cmd.Flags().IntVarP(&maxCount, "max-count", "n", 0, "Limit the number of commits shown (0 for all)")

	return cmd
}
