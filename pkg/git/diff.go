package git

import (
	"context"
	"strings"
)

// Diff returns the raw diff between two revisions. External diff drivers
// and colour are disabled; the text is otherwise unparsed.
func (r *Repository) Diff(ctx context.Context, from, to string) (string, error) {
	if err := validateRevision(from); err != nil {
		return "", err
	}
	if err := validateRevision(to); err != nil {
		return "", err
	}
	lines, err := r.run(ctx, "diff", "--no-ext-diff", "--no-color", from, to, "--")
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
