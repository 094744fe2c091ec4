package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitOutput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: []string{}},
		{name: "only newline", in: "\n", want: []string{}},
		{name: "single line", in: "main\n", want: []string{"main"}},
		{name: "no trailing newline", in: "a\nb", want: []string{"a", "b"}},
		{name: "keeps inner blank lines", in: "a\n\n    b\n", want: []string{"a", "", "    b"}},
		{name: "strips carriage returns", in: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "keeps trailing blank line before final newline", in: "a\n\n", want: []string{"a", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, splitOutput(tt.in))
		})
	}
}

func TestParseSymbolicRef(t *testing.T) {
	t.Run("strips the heads prefix only", func(t *testing.T) {
		name, err := parseSymbolicRef([]string{"refs/heads/feature/login"})
		require.NoError(t, err)
		require.Equal(t, "feature/login", name)
	})

	t.Run("non-branch refs are not branches", func(t *testing.T) {
		_, err := parseSymbolicRef([]string{"refs/remotes/origin/main"})
		require.Error(t, err)
	})

	t.Run("no output is not a branch", func(t *testing.T) {
		_, err := parseSymbolicRef(nil)
		require.Error(t, err)
	})
}

func TestValidateRevision(t *testing.T) {
	for _, rev := range []string{"main", "HEAD~2", "v1.0.0", "abc123", "feature/x"} {
		require.NoError(t, validateRevision(rev), rev)
	}
	for _, rev := range []string{"", "  ", "-p", "--output=/tmp/x"} {
		require.Error(t, validateRevision(rev), rev)
	}
}
