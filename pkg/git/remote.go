package git

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"

	gitwraperrors "gitwrap.dev/gitwrap/pkg/errors"
)

// RemoteRepository is a named remote with independently configured URLs.
// A nil URL means that direction is not configured.
type RemoteRepository struct {
	Name     string
	FetchURL *string
	PushURL  *string
}

var remoteLineRe = regexp.MustCompile(`^(\S+)\s+(.+?)\s+\((fetch|push)\)$`)

// ListRemotes returns the configured remotes keyed by name.
func (r *Repository) ListRemotes(ctx context.Context) (map[string]*RemoteRepository, error) {
	lines, err := r.run(ctx, "remote", "-v")
	if err != nil {
		return nil, err
	}
	return ParseRemotes(lines)
}

// Remotes returns the configured remotes sorted by name.
func (r *Repository) Remotes(ctx context.Context) ([]RemoteRepository, error) {
	byName, err := r.ListRemotes(ctx)
	if err != nil {
		return nil, err
	}
	remotes := make([]RemoteRepository, 0, len(byName))
	for _, remote := range byName {
		remotes = append(remotes, *remote)
	}
	sort.Slice(remotes, func(i, j int) bool {
		return remotes[i].Name < remotes[j].Name
	})
	return remotes, nil
}

// ParseRemotes parses `remote -v` output. Unlike ParseLog it is strict:
// every non-blank line must match "<name> <url> (fetch|push)".
func ParseRemotes(lines []string) (map[string]*RemoteRepository, error) {
	remotes := make(map[string]*RemoteRepository)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := remoteLineRe.FindStringSubmatch(line)
		if m == nil {
			return nil, gitwraperrors.NewMalformedOutputError(gitwraperrors.OutputRemote, i+1, line, "expected <name> <url> (fetch|push)", nil)
		}
		name, url, direction := m[1], m[2], m[3]

		remote, ok := remotes[name]
		if !ok {
			remote = &RemoteRepository{Name: name}
			remotes[name] = remote
		}
		if direction == "fetch" {
			remote.FetchURL = &url
		} else {
			remote.PushURL = &url
		}
	}
	return remotes, nil
}

// AddRemote configures a new remote
func (r *Repository) AddRemote(ctx context.Context, name, url string) error {
	_, err := r.runner.Run(ctx, "remote", "add", "--", name, url)
	return classifyRemoteError("add", name, err)
}

// RemoveRemote deletes a remote and its remote-tracking branches
func (r *Repository) RemoveRemote(ctx context.Context, name string) error {
	_, err := r.runner.Run(ctx, "remote", "remove", "--", name)
	return classifyRemoteError("remove", name, err)
}

// UpdateRemotes fetches every configured remote
func (r *Repository) UpdateRemotes(ctx context.Context) error {
	_, err := r.runner.Run(ctx, "remote", "update")
	return classifyRemoteError("update", "", err)
}

type failurePattern struct {
	re   *regexp.Regexp
	kind error
}

// remoteFailurePatterns map lowercase diagnostic fragments to error kinds per
// operation. Matching only classifies a failure; the exit status decides
// whether one occurred.
var remoteFailurePatterns = map[string][]failurePattern{
	"add": {
		{regexp.MustCompile(`remote .* already exists`), gitwraperrors.ErrRemoteAlreadyExists},
		{regexp.MustCompile(`is not a valid remote name`), gitwraperrors.ErrInvalidRemoteName},
	},
	"remove": {
		{regexp.MustCompile(`no such remote`), gitwraperrors.ErrCouldNotRemove},
		{regexp.MustCompile(`could not remove`), gitwraperrors.ErrCouldNotRemove},
	},
	"update": {
		// several remotes: "error: could not fetch <name>"
		{regexp.MustCompile(`could not fetch`), gitwraperrors.ErrCouldNotFetch},
		// a single remote reports the transport failure directly
		{regexp.MustCompile(`could not read from remote repository`), gitwraperrors.ErrCouldNotFetch},
		{regexp.MustCompile(`does not appear to be a git repository`), gitwraperrors.ErrCouldNotFetch},
	},
}

// classifyRemoteError turns a failed remote command into a specific error
// kind based on its diagnostic output.
func classifyRemoteError(op, name string, err error) error {
	if err == nil {
		return nil
	}
	var cmdErr *gitwraperrors.CommandError
	if !errors.As(err, &cmdErr) {
		return err
	}

	output := cmdErr.Output()
	if strings.TrimSpace(output) == "" || cmdErr.ExitCode < 0 {
		return cmdErr
	}

	lower := strings.ToLower(output)
	for _, p := range remoteFailurePatterns[op] {
		if p.re.MatchString(lower) {
			return gitwraperrors.NewRemoteError(op, name, p.kind, cmdErr)
		}
	}
	return gitwraperrors.NewToolError(output, cmdErr)
}
