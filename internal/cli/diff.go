package cli

import (
	"fmt"
	"strings"
	"unicode"
)

// HighlightDifferences renders a three-line comparison of a submitted answer
// against the correct one, marking mismatched positions with '^' under the
// submitted text. Comparison is case-insensitive, matching the answer check.
func HighlightDifferences(submitted, correct string) string {
	submittedRunes := []rune(submitted)
	correctRunes := []rune(correct)

	maxLen := len(submittedRunes)
	if len(correctRunes) > maxLen {
		maxLen = len(correctRunes)
	}

	markers := make([]rune, maxLen)
	for i := 0; i < maxLen; i++ {
		submittedChar := ' '
		if i < len(submittedRunes) {
			submittedChar = submittedRunes[i]
		}
		correctChar := ' '
		if i < len(correctRunes) {
			correctChar = correctRunes[i]
		}

		if unicode.ToLower(submittedChar) != unicode.ToLower(correctChar) {
			markers[i] = '^'
		} else {
			markers[i] = ' '
		}
	}

	const submittedLabel = "Your answer:"
	const correctLabel = "Correct answer:"
	labelWidth := len(correctLabel)

	return fmt.Sprintf("%-*s %s\n%s%s\n%-*s %s",
		labelWidth, submittedLabel, submitted,
		strings.Repeat(" ", labelWidth+1), string(markers),
		labelWidth, correctLabel, correct,
	)
}
