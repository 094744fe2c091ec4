package git_test

import (
	"context"
	"sync"

	gitwraperrors "gitwrap.dev/gitwrap/pkg/errors"
	"gitwrap.dev/gitwrap/pkg/git"
)

// fakeRunner replays canned output and records the arguments it was called with.
type fakeRunner struct {
	mu       sync.Mutex
	calls    [][]string
	lines    []string
	stderr   []string
	exitCode int
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (*git.CommandOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string(nil), args...))

	outcome := &git.CommandOutcome{
		Lines:    append([]string{}, f.lines...),
		Stderr:   append([]string{}, f.stderr...),
		ExitCode: f.exitCode,
	}
	if f.exitCode != 0 {
		return outcome, gitwraperrors.NewCommandError("git", args, "", f.exitCode, outcome.Lines, outcome.Stderr, nil)
	}
	return outcome, nil
}

func (f *fakeRunner) lastCall() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
