package git

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"strings"
	"time"

	gitwraperrors "gitwrap.dev/gitwrap/pkg/errors"
)

// DefaultTool is the executable used when no other binary is configured
const DefaultTool = "git"

// baseEnv is appended to every invocation so diagnostics stay stable for
// classification and git never blocks on a credential prompt.
var baseEnv = []string{"GIT_TERMINAL_PROMPT=0", "LC_ALL=C"}

// discardHandler drops every record (stand-in for slog.DiscardHandler, which
// needs Go 1.24).
var discardHandler slog.Handler = slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})

// CommandOutcome is the captured result of one git invocation.
type CommandOutcome struct {
	// Lines holds stdout in emission order with line terminators removed.
	Lines []string
	// Stderr holds the diagnostic stream, split the same way.
	Stderr []string
	// ExitCode is the process exit status, or -1 if it never started.
	ExitCode int
}

// Runner executes git subcommands against a single working copy.
type Runner interface {
	Run(ctx context.Context, args ...string) (*CommandOutcome, error)
}

// CommandRunner handles execution of git commands in a fixed directory.
// The directory is passed to the child process; the process-wide working
// directory is never touched, so runners for different repositories can be
// used from concurrent goroutines.
type CommandRunner struct {
	workingDir string
	tool       string
	env        []string
	logger     *slog.Logger
}

// RunnerOption configures a CommandRunner
type RunnerOption func(*CommandRunner)

// WithTool overrides the git executable
func WithTool(tool string) RunnerOption {
	return func(r *CommandRunner) {
		if tool != "" {
			r.tool = tool
		}
	}
}

// WithRunnerEnv appends KEY=VALUE pairs to the child environment
func WithRunnerEnv(env ...string) RunnerOption {
	return func(r *CommandRunner) {
		r.env = append(r.env, env...)
	}
}

// WithRunnerLogger sets the logger used for command tracing
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *CommandRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string, opts ...RunnerOption) *CommandRunner {
	r := &CommandRunner{
		workingDir: workingDir,
		tool:       DefaultTool,
		logger:     slog.New(discardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WorkingDir returns the directory commands run in
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Run executes git with the given arguments and returns the captured output.
// A process that cannot be started or exits non-zero yields a
// *errors.CommandError alongside whatever output was captured.
func (r *CommandRunner) Run(ctx context.Context, args ...string) (*CommandOutcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, r.tool, args...)
	cmd.Dir = r.workingDir
	cmd.Env = append(os.Environ(), baseEnv...)
	cmd.Env = append(cmd.Env, r.env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	outcome := &CommandOutcome{
		Lines:    splitOutput(stdout.String()),
		Stderr:   splitOutput(stderr.String()),
		ExitCode: 0,
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
		} else {
			outcome.ExitCode = -1
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		r.logger.Debug("git command failed",
			"args", args,
			"dir", r.workingDir,
			"exit", outcome.ExitCode,
			"duration", time.Since(start),
			"error", err)
		return outcome, gitwraperrors.NewCommandError(r.tool, args, r.workingDir, outcome.ExitCode, outcome.Lines, outcome.Stderr, err)
	}

	r.logger.Debug("git command finished",
		"args", args,
		"dir", r.workingDir,
		"lines", len(outcome.Lines),
		"duration", time.Since(start))
	return outcome, nil
}

// splitOutput turns raw process output into lines. The final newline is
// dropped and each line loses a trailing carriage return; empty output
// yields an empty slice.
func splitOutput(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{}
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
