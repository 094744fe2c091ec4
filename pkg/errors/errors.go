// Package errors provides sentinel errors and custom error types for gitwrap.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrRepositoryNotFound indicates that the repository path could not be resolved
	ErrRepositoryNotFound = errors.New("repository not found")

	// ErrCommandFailed indicates that git could not be started or exited non-zero
	ErrCommandFailed = errors.New("command failed")

	// ErrMalformedLogOutput indicates that log output violates the medium format grammar
	ErrMalformedLogOutput = errors.New("malformed log output")

	// ErrMalformedRemoteOutput indicates that remote -v output violates its grammar
	ErrMalformedRemoteOutput = errors.New("malformed remote output")

	// ErrRemoteAlreadyExists indicates that a remote with the same name is configured
	ErrRemoteAlreadyExists = errors.New("remote already exists")

	// ErrInvalidRemoteName indicates that git rejected a remote name
	ErrInvalidRemoteName = errors.New("invalid remote name")

	// ErrCouldNotFetch indicates that updating a remote failed to fetch
	ErrCouldNotFetch = errors.New("could not fetch remote")

	// ErrCouldNotRemove indicates that a remote could not be removed
	ErrCouldNotRemove = errors.New("could not remove remote")

	// ErrToolError indicates unclassified diagnostic output from git
	ErrToolError = errors.New("git reported an error")

	// ErrNotOnBranch indicates that HEAD is not on a branch
	ErrNotOnBranch = errors.New("not on a branch")

	// ErrInvalidRevision indicates a revision argument that cannot be passed to git
	ErrInvalidRevision = errors.New("invalid revision")
)

// RepositoryNotFoundError represents a failure to resolve a repository path
type RepositoryNotFoundError struct {
	Path string
	Err  error
}

func (e *RepositoryNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("repository %s not found: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("repository %s not found", e.Path)
}

func (e *RepositoryNotFoundError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrRepositoryNotFound
func (e *RepositoryNotFoundError) Is(target error) bool {
	return target == ErrRepositoryNotFound
}

// NewRepositoryNotFoundError creates a new RepositoryNotFoundError
func NewRepositoryNotFoundError(path string, err error) *RepositoryNotFoundError {
	return &RepositoryNotFoundError{Path: path, Err: err}
}

// CommandError represents an error from a git command execution.
// ExitCode is -1 when the process could not be started.
type CommandError struct {
	Command  string
	Args     []string
	Dir      string
	ExitCode int
	Stdout   []string
	Stderr   []string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" (exit status %d)", e.ExitCode)
	}
	if out := e.Output(); out != "" {
		msg += "\n" + out
	}
	if e.Err != nil && e.ExitCode < 0 {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

// Output returns the captured diagnostic text verbatim: stderr lines first,
// then stdout lines, joined by newlines.
func (e *CommandError) Output() string {
	lines := make([]string, 0, len(e.Stderr)+len(e.Stdout))
	lines = append(lines, e.Stderr...)
	lines = append(lines, e.Stdout...)
	return strings.Join(lines, "\n")
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrCommandFailed
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

// NewCommandError creates a new CommandError
func NewCommandError(command string, args []string, dir string, exitCode int, stdout, stderr []string, err error) *CommandError {
	return &CommandError{
		Command:  command,
		Args:     args,
		Dir:      dir,
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   stderr,
		Err:      err,
	}
}

// OutputKind names the grammar a MalformedOutputError was raised against
type OutputKind string

const (
	OutputLog    OutputKind = "log"
	OutputRemote OutputKind = "remote"
)

// MalformedOutputError represents git output that does not match the expected grammar
type MalformedOutputError struct {
	Kind       OutputKind
	LineNumber int
	Line       string
	Reason     string
	Err        error
}

func (e *MalformedOutputError) Error() string {
	msg := fmt.Sprintf("malformed %s output at line %d: %s: %q", e.Kind, e.LineNumber, e.Reason, e.Line)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// Is matches ErrMalformedLogOutput or ErrMalformedRemoteOutput depending on Kind
func (e *MalformedOutputError) Is(target error) bool {
	switch e.Kind {
	case OutputLog:
		return target == ErrMalformedLogOutput
	case OutputRemote:
		return target == ErrMalformedRemoteOutput
	}
	return false
}

// NewMalformedOutputError creates a new MalformedOutputError
func NewMalformedOutputError(kind OutputKind, lineNumber int, line, reason string, err error) *MalformedOutputError {
	return &MalformedOutputError{
		Kind:       kind,
		LineNumber: lineNumber,
		Line:       line,
		Reason:     reason,
		Err:        err,
	}
}

// RemoteError is a classified failure of a mutating remote operation.
// Kind is one of the remote sentinels; Cause carries the raw git output.
type RemoteError struct {
	Op    string
	Name  string
	Kind  error
	Cause *CommandError
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("remote %s", e.Op)
	if e.Name != "" {
		msg += " " + e.Name
	}
	msg += fmt.Sprintf(": %v", e.Kind)
	if e.Cause != nil {
		if out := e.Cause.Output(); out != "" {
			msg += "\n" + out
		}
	}
	return msg
}

func (e *RemoteError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// Is returns true if the target error is the classified kind
func (e *RemoteError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// NewRemoteError creates a new RemoteError
func NewRemoteError(op, name string, kind error, cause *CommandError) *RemoteError {
	return &RemoteError{Op: op, Name: name, Kind: kind, Cause: cause}
}

// ToolError carries diagnostic text git printed that matched no known pattern
type ToolError struct {
	Output string
	Cause  *CommandError
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("git error: %s", e.Output)
}

func (e *ToolError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// Is returns true if the target error is ErrToolError
func (e *ToolError) Is(target error) bool {
	return target == ErrToolError
}

// NewToolError creates a new ToolError
func NewToolError(output string, cause *CommandError) *ToolError {
	return &ToolError{Output: output, Cause: cause}
}

// InvalidRevisionError represents a revision argument rejected before running git
type InvalidRevisionError struct {
	Revision string
}

func (e *InvalidRevisionError) Error() string {
	if e.Revision == "" {
		return "invalid revision: empty"
	}
	return fmt.Sprintf("invalid revision %q", e.Revision)
}

// Is returns true if the target error is ErrInvalidRevision
func (e *InvalidRevisionError) Is(target error) bool {
	return target == ErrInvalidRevision
}

// NewInvalidRevisionError creates a new InvalidRevisionError
func NewInvalidRevisionError(revision string) *InvalidRevisionError {
	return &InvalidRevisionError{Revision: revision}
}
