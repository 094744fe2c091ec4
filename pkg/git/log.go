package git

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	gitwraperrors "gitwrap.dev/gitwrap/pkg/errors"
)

// DateLayout is the layout git uses for --date=default in medium format,
// e.g. "Thu Apr 7 15:13:13 2005 -0700".
const DateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// Order is the traversal direction of ListRevisions
type Order int

const (
	// Descending lists the most recent revision first
	Descending Order = iota
	// Ascending lists revisions in chronological order
	Ascending
)

func (o Order) String() string {
	switch o {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// Revision is a single non-merge commit parsed from log output
type Revision struct {
	SHA1    string
	Author  string
	Date    time.Time
	Message string
}

// ShortSHA returns the abbreviated commit id
func (r Revision) ShortSHA() string {
	if len(r.SHA1) <= 7 {
		return r.SHA1
	}
	return r.SHA1[:7]
}

var commitLineRe = regexp.MustCompile(`^commit ([0-9a-f]{40}|[0-9a-f]{64})$`)

// ListRevisions returns non-merge revisions in the requested order. A limit
// of zero means no limit. For Ascending the oldest limit revisions are
// returned; for Descending the newest.
func (r *Repository) ListRevisions(ctx context.Context, order Order, limit int) ([]Revision, error) {
	if limit < 0 {
		return nil, fmt.Errorf("invalid revision limit %d", limit)
	}

	args := []string{
		"log",
		"--no-merges",
		"--date-order",
		"--format=medium",
		"--date=default",
		"--no-decorate",
		"--no-abbrev-commit",
		"--no-color",
	}
	switch order {
	case Ascending:
		// --max-count is applied before --reverse, so the limit is applied here
		// after parsing to keep the oldest revisions.
		args = append(args, "--reverse")
	case Descending:
		if limit > 0 {
			args = append(args, "--max-count="+strconv.Itoa(limit))
		}
	default:
		return nil, fmt.Errorf("unknown revision order %v", order)
	}

	lines, err := r.run(ctx, args...)
	if err != nil {
		return nil, err
	}

	revisions, err := ParseLog(lines)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(revisions) > limit {
		revisions = revisions[:limit]
	}
	r.logger.Debug("listed revisions", "order", order, "limit", limit, "count", len(revisions))
	return revisions, nil
}

// ParseLog parses medium format log output into revisions, preserving the
// emission order. Entries whose commit line cannot be matched are dropped;
// a Date line that does not parse is an error.
func ParseLog(lines []string) ([]Revision, error) {
	revisions := []Revision{}

	var currentSHA1, currentAuthor string
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "commit "):
			currentAuthor = ""
			currentSHA1 = ""
			if m := commitLineRe.FindStringSubmatch(line); m != nil {
				currentSHA1 = m[1]
			}
		case strings.HasPrefix(line, "Author:"):
			currentAuthor = strings.TrimSpace(strings.TrimPrefix(line, "Author:"))
		case strings.HasPrefix(line, "Date:"):
			if currentSHA1 == "" {
				currentAuthor = ""
				continue
			}
			raw := strings.TrimSpace(strings.TrimPrefix(line, "Date:"))
			date, err := time.Parse(DateLayout, raw)
			if err != nil {
				return nil, gitwraperrors.NewMalformedOutputError(gitwraperrors.OutputLog, i+1, line, "unparsable date", err)
			}
			revisions = append(revisions, Revision{
				SHA1:    currentSHA1,
				Author:  currentAuthor,
				Date:    date,
				Message: messageAfter(lines, i),
			})
			currentSHA1 = ""
			currentAuthor = ""
		}
	}

	return revisions, nil
}

// messageAfter returns the summary line two lines past the Date line. Medium
// format indents message lines, so anything else means the message is empty.
func messageAfter(lines []string, dateIndex int) string {
	idx := dateIndex + 2
	if idx >= len(lines) {
		return ""
	}
	if lines[dateIndex+1] != "" {
		return ""
	}
	msg := lines[idx]
	if !strings.HasPrefix(msg, "    ") && !strings.HasPrefix(msg, "\t") {
		return ""
	}
	return strings.TrimSpace(msg)
}
