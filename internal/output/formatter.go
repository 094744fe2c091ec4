package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"gitwrap.dev/gitwrap/pkg/git"
)

// Palette for the log columns, taken from the branch colours of the tree view
var (
	shaColor    = lipgloss.Color("#f5c800")
	authorColor = lipgloss.Color("#4dca7d")
	dateColor   = lipgloss.Color("#4ccbf1")
	dimColor    = lipgloss.Color("#9f83e4")
)

// DateFormat is how revision timestamps are printed
const DateFormat = "2006-01-02 15:04:05 -0700"

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Formatter renders git results for the terminal
type Formatter struct {
	out    io.Writer
	sha    lipgloss.Style
	author lipgloss.Style
	date   lipgloss.Style
	dim    lipgloss.Style
}

// NewFormatter creates a formatter writing to out. Colour is used only when
// color is true; callers combine the config setting with IsTerminal.
func NewFormatter(out io.Writer, color bool) *Formatter {
	renderer := lipgloss.NewRenderer(out)
	if color {
		renderer.SetColorProfile(termenv.TrueColor)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return &Formatter{
		out:    out,
		sha:    renderer.NewStyle().Foreground(shaColor),
		author: renderer.NewStyle().Foreground(authorColor),
		date:   renderer.NewStyle().Foreground(dateColor),
		dim:    renderer.NewStyle().Foreground(dimColor),
	}
}

// Revisions prints one line per revision: short sha, date, author, message
func (f *Formatter) Revisions(revisions []git.Revision) {
	for _, r := range revisions {
		fmt.Fprintf(f.out, "%s %s %s %s\n",
			f.sha.Render(r.ShortSHA()),
			f.date.Render(r.Date.Format(DateFormat)),
			f.author.Render(r.Author),
			r.Message)
	}
}

// Remotes prints each remote with its fetch and push URLs
func (f *Formatter) Remotes(remotes []git.RemoteRepository) {
	for _, r := range remotes {
		fmt.Fprintf(f.out, "%s\t%s %s\n", r.Name, urlOrUnset(r.FetchURL), f.dim.Render("(fetch)"))
		fmt.Fprintf(f.out, "%s\t%s %s\n", r.Name, urlOrUnset(r.PushURL), f.dim.Render("(push)"))
	}
}

// Lines prints each string on its own line
func (f *Formatter) Lines(lines []string) {
	for _, l := range lines {
		fmt.Fprintln(f.out, l)
	}
}

// Text prints s, adding a trailing newline when it is non-empty
func (f *Formatter) Text(s string) {
	if s == "" {
		return
	}
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	fmt.Fprint(f.out, s)
}

func urlOrUnset(url *string) string {
	if url == nil {
		return "<unset>"
	}
	return *url
}
