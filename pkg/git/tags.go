package git

import "context"

// Tags returns the tag names git lists, one per line, in git's order.
// Column layout is disabled so a column.ui setting cannot merge lines.
func (r *Repository) Tags(ctx context.Context) ([]string, error) {
	return r.run(ctx, "tag", "--list", "--no-column")
}
