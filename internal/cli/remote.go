package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	gitwraperrors "gitwrap.dev/gitwrap/pkg/errors"
)

// newRemoteCmd creates the remote command and its subcommands
func newRemoteCmd(getCtx contextFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "List and manage remotes",
		Args:  cobra.NoArgs,
		RunE:  runRemoteList(getCtx),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List remotes with their fetch and push URLs",
		Args:  cobra.NoArgs,
		RunE:  runRemoteList(getCtx),
	})
	cmd.AddCommand(newRemoteAddCmd(getCtx))
	cmd.AddCommand(newRemoteRemoveCmd(getCtx))
	cmd.AddCommand(newRemoteUpdateCmd(getCtx))

	return cmd
}

func runRemoteList(getCtx contextFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		rt := getCtx()
		ctx, cancel := rt.CommandContext(cmd.Context())
		defer cancel()

		remotes, err := rt.Repo.Remotes(ctx)
		if err != nil {
			return fmt.Errorf("failed to list remotes: %w", err)
		}
		rt.Formatter.Remotes(remotes)
		return nil
	}
}

func newRemoteAddCmd(getCtx contextFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Add a remote",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := getCtx()
			ctx, cancel := rt.CommandContext(cmd.Context())
			defer cancel()

			name, url := args[0], args[1]
			if err := rt.Repo.AddRemote(ctx, name, url); err != nil {
				switch {
				case errors.Is(err, gitwraperrors.ErrRemoteAlreadyExists):
					return fmt.Errorf("remote %s already exists: %w", name, err)
				case errors.Is(err, gitwraperrors.ErrInvalidRemoteName):
					return fmt.Errorf("%q is not a valid remote name: %w", name, err)
				}
				return err
			}
			rt.Splog.Info("Added remote %s.", name)
			return nil
		},
	}
}

func newRemoteRemoveCmd(getCtx contextFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Short:   "Remove a remote and its remote-tracking branches",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := getCtx()
			ctx, cancel := rt.CommandContext(cmd.Context())
			defer cancel()

			if err := rt.Repo.RemoveRemote(ctx, args[0]); err != nil {
				return err
			}
			rt.Splog.Info("Removed remote %s.", args[0])
			return nil
		},
	}
}

func newRemoteUpdateCmd(getCtx contextFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Fetch every configured remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := getCtx()
			ctx, cancel := rt.CommandContext(cmd.Context())
			defer cancel()

			if err := rt.Repo.UpdateRemotes(ctx); err != nil {
				return err
			}
			rt.Splog.Info("Remotes updated.")
			return nil
		},
	}
}
