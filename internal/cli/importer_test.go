package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePairsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pairs.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadPairsFile(t *testing.T) {
	testCases := []struct {
		name      string
		content   string
		want      []Pair
		wantError string
	}{
		{
			name:    "alternating lines",
			content: "the table\nla mesa\nthe chair\nla silla\n",
			want: []Pair{
				{Question: "the table", Answer: "la mesa"},
				{Question: "the chair", Answer: "la silla"},
			},
		},
		{
			name:    "blank lines and whitespace skipped",
			content: "\n  the table  \n\nla mesa\n\n",
			want: []Pair{
				{Question: "the table", Answer: "la mesa"},
			},
		},
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
		{
			name:      "odd line count returns nothing",
			content:   "the table\nla mesa\nthe chair\n",
			wantError: "must contain pairs of lines",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writePairsFile(t, tc.content)
			got, err := ReadPairsFile(path)
			if tc.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantError)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadPairsFile_MissingFile(t *testing.T) {
	_, err := ReadPairsFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
