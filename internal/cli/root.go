package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitwrap.dev/gitwrap/internal/output"
	"gitwrap.dev/gitwrap/internal/runtime"
)

type globalFlags struct {
	repo       string
	configPath string
	debug      bool
	noColor    bool
}

// contextFunc returns the runtime context built for the running command
type contextFunc func() *runtime.Context

// app holds the state shared by the commands of one invocation
type app struct {
	flags globalFlags
	ctx   *runtime.Context
}

func (a *app) open(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	terminal := false
	if f, ok := out.(*os.File); ok {
		terminal = output.IsTerminal(f)
	}
	ctx, err := runtime.NewContext(runtime.Options{
		RepoPath:   a.flags.repo,
		ConfigPath: a.flags.configPath,
		Debug:      a.flags.debug,
		NoColor:    a.flags.noColor,
		Stdout:     out,
		Stderr:     cmd.ErrOrStderr(),
		Terminal:   terminal,
	})
	if err != nil {
		return err
	}
	a.ctx = ctx
	return nil
}

func (a *app) context() *runtime.Context {
	return a.ctx
}

func (a *app) close() error {
	if a.ctx == nil {
		return nil
	}
	err := a.ctx.Close()
	a.ctx = nil
	return err
}

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	cmd, _ := newRootCmd(version, commit, date)
	return cmd
}

func newRootCmd(version, commit, date string) (*cobra.Command, *app) {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "gitwrap",
		Short: "Inspect and manage a git repository through a typed interface",
		Long: `gitwrap runs git on a repository and presents its history, remotes,
branches and tags as structured results.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.flags.repo, "repo", "C", ".", "Path to the repository")
	rootCmd.PersistentFlags().StringVar(&a.flags.configPath, "config", "", "Path to the config file")
	rootCmd.PersistentFlags().BoolVar(&a.flags.debug, "debug", false, "Write debug output, including every git invocation")
	rootCmd.PersistentFlags().BoolVar(&a.flags.noColor, "no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(newLogCmd(a.context))
	rootCmd.AddCommand(newRemoteCmd(a.context))
	rootCmd.AddCommand(newBranchCmd(a.context))
	rootCmd.AddCommand(newTagsCmd(a.context))
	rootCmd.AddCommand(newDiffCmd(a.context))
	rootCmd.AddCommand(newCheckoutCmd(a.context))
	rootCmd.AddCommand(newConfigCmd(&a.flags))

	// cobra skips post-run hooks when RunE fails, so the context is
	// closed by each command instead
	closeAfterRun(rootCmd, a.close)

	return rootCmd, a
}

// closeAfterRun wraps every RunE in the tree so closeFn runs on success
// and on failure. The command's own error takes precedence.
func closeAfterRun(cmd *cobra.Command, closeFn func() error) {
	for _, sub := range cmd.Commands() {
		closeAfterRun(sub, closeFn)
	}
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		err := run(c, args)
		if closeErr := closeFn(); err == nil {
			err = closeErr
		}
		return err
	}
}
