package scheduler

import (
	"testing"

	"github.com/at-ishikawa/recall/internal/item"
)

func TestEstimateRating(t *testing.T) {
	tests := []struct {
		name     string
		history  item.History
		correct  bool
		expected int
	}{
		{
			name:     "incorrect answer always rates 0",
			history:  item.History{item.OutcomeCorrect, item.OutcomeCorrect, item.OutcomeCorrect},
			correct:  false,
			expected: 0,
		},
		{
			name:     "correct with no streak",
			history:  item.History{},
			correct:  true,
			expected: 2,
		},
		{
			name:     "correct after an incorrect answer",
			history:  item.History{item.OutcomeCorrect, item.OutcomeIncorrect},
			correct:  true,
			expected: 2,
		},
		{
			name:     "correct with streak of one",
			history:  item.History{item.OutcomeCorrect},
			correct:  true,
			expected: 3,
		},
		{
			name:     "correct with streak of two",
			history:  item.History{item.OutcomeIncorrect, item.OutcomeCorrect, item.OutcomeCorrect},
			correct:  true,
			expected: 4,
		},
		{
			name:     "correct with streak of three",
			history:  item.History{item.OutcomeCorrect, item.OutcomeCorrect, item.OutcomeCorrect},
			correct:  true,
			expected: 5,
		},
		{
			name:     "correct with a long streak",
			history:  item.History{item.OutcomeCorrect, item.OutcomeCorrect, item.OutcomeCorrect, item.OutcomeCorrect, item.OutcomeCorrect},
			correct:  true,
			expected: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateRating(tt.history, tt.correct)
			if got != tt.expected {
				t.Errorf("EstimateRating(%v, %v) = %d, want %d", tt.history, tt.correct, got, tt.expected)
			}
		})
	}
}
