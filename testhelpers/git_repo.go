package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	// DefaultAuthorName is used for commits that don't name an author
	DefaultAuthorName = "Test User"
	// DefaultAuthorEmail is used for commits that don't name an author
	DefaultAuthorEmail = "test@example.com"
)

// BaseTime is the timestamp of the first commit made through Commit.
// Each following commit is one minute later, so log order is deterministic.
var BaseTime = time.Date(2024, time.March, 5, 9, 30, 0, 0, time.FixedZone("", 2*60*60))

// GitRepo represents a Git repository for testing purposes.
// Commits are written with go-git so their author and timestamps are exact.
type GitRepo struct {
	Dir     string
	repo    *gogit.Repository
	clock   time.Time
	commits int
}

// NewGitRepo initializes a new repository in dir with "main" as the initial branch.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName("main"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}
	return &GitRepo{Dir: dir, repo: repo, clock: BaseTime}, nil
}

// Commit creates a commit authored by the default user at the next tick of
// the repository clock and returns its SHA.
func (r *GitRepo) Commit(message string) (string, error) {
	when := r.clock
	r.clock = r.clock.Add(time.Minute)
	return r.CommitAs(DefaultAuthorName, DefaultAuthorEmail, message, when)
}

// CommitAs creates a commit with an explicit author and timestamp.
func (r *GitRepo) CommitAs(name, email, message string, when time.Time) (string, error) {
	return r.commit(message, &object.Signature{Name: name, Email: email, When: when}, nil)
}

// MergeCommit creates a commit with the given parents at the next clock tick.
// The first parent should be the current HEAD.
func (r *GitRepo) MergeCommit(message string, parents ...string) (string, error) {
	when := r.clock
	r.clock = r.clock.Add(time.Minute)
	hashes := make([]plumbing.Hash, 0, len(parents))
	for _, p := range parents {
		hashes = append(hashes, plumbing.NewHash(p))
	}
	sig := &object.Signature{Name: DefaultAuthorName, Email: DefaultAuthorEmail, When: when}
	return r.commit(message, sig, hashes)
}

func (r *GitRepo) commit(message string, sig *object.Signature, parents []plumbing.Hash) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}

	r.commits++
	fileName := fmt.Sprintf("file_%03d.txt", r.commits)
	if err := os.WriteFile(filepath.Join(r.Dir, fileName), []byte(message+"\n"), 0600); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if _, err := wt.Add(fileName); err != nil {
		return "", fmt.Errorf("failed to stage file: %w", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author:    sig,
		Committer: sig,
		Parents:   parents,
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return hash.String(), nil
}

// CreateAndCheckoutBranch creates a branch at HEAD and checks it out.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	})
}

// CheckoutBranch checks out an existing branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
}

// DetachHead points HEAD directly at the current commit.
func (r *GitRepo) DetachHead() error {
	head, err := r.repo.Head()
	if err != nil {
		return err
	}
	return r.repo.Storer.SetReference(plumbing.NewHashReference(plumbing.HEAD, head.Hash()))
}

// HeadSHA returns the commit HEAD resolves to.
func (r *GitRepo) HeadSHA() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}

// CreateTag creates a lightweight tag at HEAD.
func (r *GitRepo) CreateTag(name string) error {
	head, err := r.repo.Head()
	if err != nil {
		return err
	}
	_, err = r.repo.CreateTag(name, head.Hash(), nil)
	return err
}

// AddRemote configures a remote with the given URL.
func (r *GitRepo) AddRemote(name, url string) error {
	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	return err
}

// SetPushURL sets a push URL that differs from the fetch URL.
func (r *GitRepo) SetPushURL(name, url string) error {
	return r.RunGitCommand("config", "remote."+name+".pushurl", url)
}

// RemoteNames returns the remotes go-git sees in the repository config.
func (r *GitRepo) RemoteNames() ([]string, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		names = append(names, remote.Config().Name)
	}
	return names, nil
}

// WriteFile writes a file in the working copy without staging it.
func (r *GitRepo) WriteFile(name, content string) error {
	path := filepath.Join(r.Dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0600)
}

// ReadFile reads a file from the working copy.
func (r *GitRepo) ReadFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.Dir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// RunGitCommand executes a git command in the repository directory.
// Uses GIT_CONFIG_GLOBAL=/dev/null to avoid reading global config.
func (r *GitRepo) RunGitCommand(args ...string) error {
	_, err := r.RunGitCommandAndGetOutput(args...)
	return err
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, output)
	}
	return strings.TrimSpace(string(output)), nil
}
