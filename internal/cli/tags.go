package cli

import (
	"github.com/spf13/cobra"
)

// newTagsCmd creates the tags command
func newTagsCmd(getCtx contextFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := getCtx()
			ctx, cancel := rt.CommandContext(cmd.Context())
			defer cancel()

			tags, err := rt.Repo.Tags(ctx)
			if err != nil {
				return err
			}
			rt.Formatter.Lines(tags)
			return nil
		},
	}
}
