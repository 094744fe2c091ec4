package git

import "context"

// Checkout switches the working copy to revision, discarding local changes.
func (r *Repository) Checkout(ctx context.Context, revision string) error {
	if err := validateRevision(revision); err != nil {
		return err
	}
	_, err := r.run(ctx, "checkout", "--force", "--quiet", revision, "--")
	return err
}
