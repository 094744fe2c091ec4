// Package git runs the git executable against a single working copy and
// turns selected output into typed values.
//
// It provides a Go-friendly interface for:
//   - Revision history (log in medium format, oldest or newest first)
//   - Remotes (list, add, remove, update)
//   - Branch, tag, diff and checkout passthroughs
//
// Commands run with an explicit working directory, so Repository values
// for different paths can be used concurrently. Failures are reported with
// the types in gitwrap.dev/gitwrap/pkg/errors.
package git
