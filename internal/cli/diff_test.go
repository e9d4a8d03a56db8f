package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightDifferences(t *testing.T) {
	testCases := []struct {
		name        string
		submitted   string
		correct     string
		wantMarkers string
	}{
		{
			name:        "single wrong character",
			submitted:   "la meza",
			correct:     "la mesa",
			wantMarkers: "     ^",
		},
		{
			name:        "submitted shorter than correct",
			submitted:   "la me",
			correct:     "la mesa",
			wantMarkers: "     ^^",
		},
		{
			name:        "submitted longer than correct",
			submitted:   "la mesaa",
			correct:     "la mesa",
			wantMarkers: "       ^",
		},
		{
			name:        "case difference is not marked",
			submitted:   "La Mesa",
			correct:     "la mesa",
			wantMarkers: "",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := HighlightDifferences(tc.submitted, tc.correct)
			lines := strings.Split(got, "\n")
			require.Len(t, lines, 3)

			assert.Equal(t, "Your answer:    "+tc.submitted, lines[0])
			assert.Equal(t, tc.wantMarkers, strings.TrimRight(lines[1], " "))
			assert.Equal(t, "Correct answer: "+tc.correct, lines[2])
		})
	}
}

func TestHighlightDifferences_MarkerAlignment(t *testing.T) {
	got := HighlightDifferences("cat", "car")
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)

	// The marker line is padded past the label so '^' sits under the
	// mismatched rune of the submitted text.
	answerStart := strings.Index(lines[0], "cat")
	markerPos := strings.Index(lines[1], "^")
	assert.Equal(t, answerStart+2, markerPos)
}
