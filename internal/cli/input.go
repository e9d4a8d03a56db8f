package cli

import "strings"

// Directive is a session-control command intercepted before input is treated
// as an answer.
type Directive int

const (
	// DirectiveAnswer means the input is a plain answer attempt.
	DirectiveAnswer Directive = iota
	// DirectivePause flushes the elapsed-time accumulator and ends the
	// session cleanly.
	DirectivePause
	// DirectiveEditCurrent edits the item currently presented.
	DirectiveEditCurrent
	// DirectiveEditPrevious edits the item presented before this one.
	DirectiveEditPrevious
)

// ClassifyInput separates session-control commands from answers, keeping the
// state machine free of I/O concerns.
func ClassifyInput(input string) Directive {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "!pause":
		return DirectivePause
	case "!edit_now":
		return DirectiveEditCurrent
	case "!edit_before":
		return DirectiveEditPrevious
	default:
		return DirectiveAnswer
	}
}

// IsCorrectAnswer compares a submitted answer against the expected one,
// ignoring surrounding whitespace and letter case.
func IsCorrectAnswer(submitted, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(expected))
}
