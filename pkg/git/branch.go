package git

import (
	"context"
	"errors"
	"strings"

	gitwraperrors "gitwrap.dev/gitwrap/pkg/errors"
)

const branchRefPrefix = "refs/heads/"

// CurrentBranch returns the name of the checked out branch, read from
// `symbolic-ref --quiet HEAD`. Names containing slashes are returned whole.
// A detached HEAD yields errors.ErrNotOnBranch.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	lines, err := r.run(ctx, "symbolic-ref", "--quiet", "HEAD")
	if err != nil {
		var cmdErr *gitwraperrors.CommandError
		// --quiet makes a detached HEAD exit 1 without any output
		if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 && strings.TrimSpace(cmdErr.Output()) == "" {
			return "", gitwraperrors.ErrNotOnBranch
		}
		return "", err
	}
	return parseSymbolicRef(lines)
}

func parseSymbolicRef(lines []string) (string, error) {
	if len(lines) == 0 {
		return "", gitwraperrors.ErrNotOnBranch
	}
	ref := strings.TrimSpace(lines[0])
	if !strings.HasPrefix(ref, branchRefPrefix) || ref == branchRefPrefix {
		return "", gitwraperrors.ErrNotOnBranch
	}
	return strings.TrimPrefix(ref, branchRefPrefix), nil
}
