package scheduler

import "github.com/at-ishikawa/recall/internal/item"

// EstimateRating maps an answer outcome and the item's prior history to a
// 0-5 quality rating. The history is inspected before the new outcome is
// appended: the rating reflects the streak the learner walked in with.
func EstimateRating(history item.History, correct bool) int {
	if !correct {
		return 0
	}

	switch streak := history.TrailingCorrectRun(); {
	case streak >= 3:
		return 5
	case streak == 2:
		return 4
	case streak == 1:
		return 3
	default:
		return 2
	}
}
