package runtime

import (
	"context"
	"fmt"
	"io"

	"gitwrap.dev/gitwrap/internal/config"
	"gitwrap.dev/gitwrap/internal/output"
	"gitwrap.dev/gitwrap/pkg/git"
)

// Options describe how a Context is built from CLI flags
type Options struct {
	RepoPath   string
	ConfigPath string
	Debug      bool
	NoColor    bool
	// Stdout receives command results; Stderr receives log messages
	Stdout io.Writer
	Stderr io.Writer
	// Terminal reports whether Stdout is an interactive terminal
	Terminal bool
}

// Context provides access to the repository and output for commands
type Context struct {
	Repo      *git.Repository
	Splog     *output.Splog
	Formatter *output.Formatter
	Config    *config.Config
}

// NewContext loads configuration, sets up logging and opens the repository
func NewContext(opts Options) (*Context, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		debug := true
		cfg.Debug = &debug
	}

	splog, err := output.NewSplogWithConfig(output.SplogConfig{
		Writer:   opts.Stderr,
		Debug:    cfg.DebugEnabled(),
		LogFile:  cfg.LogFile,
		Rotation: &output.Rotation{
			MaxSizeMB:  cfg.LogRotation.MaxSizeMB,
			MaxBackups: cfg.LogRotation.MaxBackups,
			MaxAgeDays: cfg.LogRotation.MaxAgeDays,
			Compress:   cfg.LogRotation.Compress,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	repoPath := opts.RepoPath
	if repoPath == "" {
		repoPath = "."
	}
	repo, err := git.Open(repoPath,
		git.WithGitBinary(cfg.Git),
		git.WithEnv(cfg.Env...),
		git.WithLogger(splog.Logger()),
	)
	if err != nil {
		_ = splog.Close()
		return nil, err
	}
	splog.Debug("opened repository %s", repo.Path())

	color := cfg.ColorEnabled() && !opts.NoColor && opts.Terminal
	return &Context{
		Repo:      repo,
		Splog:     splog,
		Formatter: output.NewFormatter(opts.Stdout, color),
		Config:    cfg,
	}, nil
}

// CommandContext derives the context for one git operation, applying the
// configured timeout. The library itself never imposes one.
func (c *Context) CommandContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if c.Config != nil && c.Config.Timeout > 0 {
		return context.WithTimeout(parent, c.Config.Timeout)
	}
	return context.WithCancel(parent)
}

// Close releases the log file, if any
func (c *Context) Close() error {
	if c.Splog != nil {
		return c.Splog.Close()
	}
	return nil
}
