package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gitwraperrors "gitwrap.dev/gitwrap/pkg/errors"
)

// Repository is a working copy that git commands are run against.
// Its path is resolved once in Open and never changes.
type Repository struct {
	path   string
	runner Runner
	logger *slog.Logger
}

type options struct {
	tool   string
	env    []string
	logger *slog.Logger
	runner Runner
}

// Option configures a Repository
type Option func(*options)

// WithGitBinary sets the git executable used by the default runner
func WithGitBinary(tool string) Option {
	return func(o *options) {
		o.tool = tool
	}
}

// WithEnv appends KEY=VALUE pairs to the environment of every git invocation
func WithEnv(env ...string) Option {
	return func(o *options) {
		o.env = append(o.env, env...)
	}
}

// WithLogger sets the logger for the repository and its default runner
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRunner replaces the subprocess runner entirely
func WithRunner(runner Runner) Option {
	return func(o *options) {
		o.runner = runner
	}
}

// Open resolves path to an absolute, symlink-free directory and returns a
// Repository bound to it. Resolution failures are reported immediately as
// *errors.RepositoryNotFoundError.
func Open(path string, opts ...Option) (*Repository, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(discardHandler)
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return nil, gitwraperrors.NewRepositoryNotFoundError(path, err)
	}

	runner := o.runner
	if runner == nil {
		runner = NewCommandRunner(resolved,
			WithTool(o.tool),
			WithRunnerEnv(o.env...),
			WithRunnerLogger(o.logger),
		)
	}

	return &Repository{
		path:   resolved,
		runner: runner,
		logger: o.logger,
	}, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	target, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", target)
	}
	return filepath.Clean(target), nil
}

// Path returns the resolved repository root
func (r *Repository) Path() string {
	return r.path
}

// run executes a command and returns its stdout lines
func (r *Repository) run(ctx context.Context, args ...string) ([]string, error) {
	outcome, err := r.runner.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return outcome.Lines, nil
}

// validateRevision rejects revisions git would read as options
func validateRevision(revision string) error {
	if strings.TrimSpace(revision) == "" || strings.HasPrefix(revision, "-") {
		return gitwraperrors.NewInvalidRevisionError(revision)
	}
	return nil
}
