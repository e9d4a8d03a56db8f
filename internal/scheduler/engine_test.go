package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/recall/internal/item"
)

func mustDate(t *testing.T, value string) item.Date {
	t.Helper()
	date, err := item.ParseDate(value)
	require.NoError(t, err)
	return date
}

// checkInvariants verifies the stage/status invariant after every transition.
func checkInvariants(t *testing.T, it *item.Item, scheduleLen int) {
	t.Helper()
	switch it.Status {
	case item.StatusLearning:
		assert.Equal(t, 0, it.Stage, "stage must be 0 while learning")
		assert.False(t, it.NextReviewDate.IsZero(), "learning items must have a due date")
	case item.StatusReview:
		assert.GreaterOrEqual(t, it.Stage, 1)
		assert.LessOrEqual(t, it.Stage, scheduleLen)
		assert.False(t, it.NextReviewDate.IsZero(), "review items must have a due date")
	case item.StatusDone:
		assert.True(t, it.NextReviewDate.IsZero(), "done items carry no due date")
	}
}

func TestEngine_Apply_LearningPromotion(t *testing.T) {
	// Scenario: three consecutive correct answers promote a fresh item.
	engine := NewEngine(DefaultSchedule, 3)
	today := mustDate(t, "2025-06-15")
	it := item.New("question", "answer", today)

	for round := 1; round <= 2; round++ {
		transition := engine.Apply(&it, true, 2.0, today)
		assert.False(t, transition.Promoted)
		assert.Equal(t, item.StatusLearning, it.Status)
		assert.Equal(t, round, it.CorrectStreak)
		checkInvariants(t, &it, len(DefaultSchedule))
	}

	transition := engine.Apply(&it, true, 2.0, today)
	assert.True(t, transition.Promoted)
	assert.Equal(t, item.StatusReview, it.Status)
	assert.Equal(t, 1, it.Stage)
	assert.Equal(t, 0, it.CorrectStreak)
	assert.Equal(t, today.AddDays(DefaultSchedule[0]).String(), it.NextReviewDate.String())
	checkInvariants(t, &it, len(DefaultSchedule))

	assert.Equal(t, item.History{item.OutcomeCorrect, item.OutcomeCorrect, item.OutcomeCorrect}, it.History)
	assert.Len(t, it.ResponseTimes, 3)
	assert.Len(t, it.ErrorRatios, 3)
	assert.Equal(t, 0.0, it.ErrorRatios[2])
}

func TestEngine_Apply_PromotionIdempotence(t *testing.T) {
	// Interleaved incorrect answers reset the streak; exactly one promotion
	// happens, on the third consecutive correct answer.
	engine := NewEngine(DefaultSchedule, 3)
	today := mustDate(t, "2025-06-15")
	it := item.New("question", "answer", today)

	promotions := 0
	answers := []bool{true, true, false, true, false, true, true, true}
	for _, correct := range answers {
		transition := engine.Apply(&it, correct, 1.0, today)
		if transition.Promoted {
			promotions++
		}
		checkInvariants(t, &it, len(DefaultSchedule))
	}

	assert.Equal(t, 1, promotions)
	assert.Equal(t, item.StatusReview, it.Status)
	// The final answer landed after the promotion and advanced the stage.
	assert.Equal(t, 2, it.Stage)
}

func TestEngine_Apply_LearningIncorrect(t *testing.T) {
	engine := NewEngine(DefaultSchedule, 3)
	today := mustDate(t, "2025-06-15")
	it := item.New("question", "answer", today)
	it.CorrectStreak = 2

	transition := engine.Apply(&it, false, 4.0, today)
	assert.False(t, transition.Promoted)
	assert.Equal(t, item.StatusLearning, it.Status)
	assert.Equal(t, 1, it.CorrectStreak, "incorrect answers decrement the streak")
	assert.Equal(t, today.String(), it.NextReviewDate.String())

	// The streak never goes negative.
	it.CorrectStreak = 0
	engine.Apply(&it, false, 4.0, today)
	assert.Equal(t, 0, it.CorrectStreak)
}

func TestEngine_Apply_ReviewCorrect(t *testing.T) {
	// Scenario: review item at stage 2, correct answer with rating 5 and no
	// lateness, schedule[2] = 3 days.
	engine := NewEngine(DefaultSchedule, 3)
	today := mustDate(t, "2025-06-15")
	it := item.New("question", "answer", mustDate(t, "2025-06-01"))
	it.Status = item.StatusReview
	it.Stage = 2
	it.NextReviewDate = today
	it.History = item.History{item.OutcomeCorrect, item.OutcomeCorrect, item.OutcomeCorrect}

	transition := engine.Apply(&it, true, 2.5, today)
	assert.Equal(t, 5, transition.Rating)
	assert.Equal(t, 3, transition.IntervalDays)
	assert.Equal(t, item.StatusReview, it.Status)
	assert.Equal(t, 3, it.Stage)
	assert.Equal(t, today.AddDays(3).String(), it.NextReviewDate.String())
	checkInvariants(t, &it, len(DefaultSchedule))

	require.Len(t, it.ReviewLog, 1)
	entry := it.ReviewLog[0]
	assert.Equal(t, 3, entry.ScheduledInterval)
	assert.Equal(t, 3, entry.ActualInterval)
	assert.True(t, entry.Correct)
	assert.Equal(t, 5, entry.Rating)
}

func TestEngine_Apply_ReviewLate(t *testing.T) {
	engine := NewEngine(DefaultSchedule, 3)
	today := mustDate(t, "2025-06-15")
	it := item.New("question", "answer", mustDate(t, "2025-05-01"))
	it.Status = item.StatusReview
	it.Stage = 2
	it.NextReviewDate = mustDate(t, "2025-06-12") // three days overdue
	it.History = item.History{item.OutcomeCorrect, item.OutcomeCorrect, item.OutcomeCorrect}

	transition := engine.Apply(&it, true, 2.5, today)
	// base 3 days, rating 5, 3 days late: 3 * 1.0 * (1 + 1) = 6.
	assert.Equal(t, 6, transition.IntervalDays)
	require.Len(t, it.ReviewLog, 1)
	assert.Equal(t, 6, it.ReviewLog[0].ActualInterval, "actual interval records base plus lateness")
}

func TestEngine_Apply_ReviewIncorrectDemotes(t *testing.T) {
	// Scenario: an incorrect review demotes the item back to learning.
	engine := NewEngine(DefaultSchedule, 3)
	today := mustDate(t, "2025-06-15")
	it := item.New("question", "answer", mustDate(t, "2025-05-01"))
	it.Status = item.StatusReview
	it.Stage = 4
	it.CorrectStreak = 0
	it.NextReviewDate = mustDate(t, "2025-06-20") // not yet due: lateness clamps to 0
	it.History = item.History{item.OutcomeCorrect, item.OutcomeCorrect}

	transition := engine.Apply(&it, false, 6.0, today)
	assert.True(t, transition.Demoted)
	assert.Equal(t, item.StatusLearning, it.Status)
	assert.Equal(t, 0, it.Stage)
	assert.Equal(t, 0, it.CorrectStreak)
	assert.Equal(t, today.String(), it.NextReviewDate.String())
	checkInvariants(t, &it, len(DefaultSchedule))

	require.Len(t, it.ReviewLog, 1)
	entry := it.ReviewLog[0]
	assert.False(t, entry.Correct)
	assert.Equal(t, 0, entry.Rating)
	assert.Equal(t, DefaultSchedule[3], entry.ScheduledInterval)
	assert.Equal(t, 0, entry.ActualInterval, "lateness is clamped at zero")
}

func TestEngine_Apply_ReviewCompletes(t *testing.T) {
	// Scenario: a correct answer at the last stage finishes the item.
	engine := NewEngine(DefaultSchedule, 3)
	today := mustDate(t, "2025-06-15")
	it := item.New("question", "answer", mustDate(t, "2025-01-01"))
	it.Status = item.StatusReview
	it.Stage = len(DefaultSchedule)
	it.NextReviewDate = today

	transition := engine.Apply(&it, true, 2.0, today)
	assert.True(t, transition.Completed)
	assert.Equal(t, item.StatusDone, it.Status)
	assert.True(t, it.NextReviewDate.IsZero())
	checkInvariants(t, &it, len(DefaultSchedule))
}

func TestEngine_Apply_ErrorRatios(t *testing.T) {
	engine := NewEngine(DefaultSchedule, 3)
	today := mustDate(t, "2025-06-15")
	it := item.New("question", "answer", today)

	engine.Apply(&it, false, 1.0, today)
	engine.Apply(&it, true, 1.0, today)

	require.Len(t, it.ErrorRatios, 2)
	assert.Equal(t, 1.0, it.ErrorRatios[0])
	assert.Equal(t, 0.5, it.ErrorRatios[1])
}
