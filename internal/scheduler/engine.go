package scheduler

import (
	"github.com/at-ishikawa/recall/internal/item"
)

const (
	// DefaultRequiredStreak is how many consecutive correct answers promote
	// a learning item into review.
	DefaultRequiredStreak = 3
	// DefaultDailyLimit caps how many due items one day may hold.
	DefaultDailyLimit = 30
)

// DefaultSchedule is the forgetting schedule: nominal review intervals in
// days, one entry per stage.
var DefaultSchedule = []int{1, 2, 3, 7, 15, 30, 60, 90, 120}

// Engine owns the item state machine. It applies one answer to one item,
// mutating the item's scheduling state and appending to its audit sequences.
type Engine struct {
	schedule       []int
	requiredStreak int
}

// NewEngine creates an engine for the given forgetting schedule and
// promotion streak.
func NewEngine(schedule []int, requiredStreak int) *Engine {
	return &Engine{
		schedule:       schedule,
		requiredStreak: requiredStreak,
	}
}

// Schedule returns the forgetting schedule the engine runs on.
func (e *Engine) Schedule() []int {
	return e.schedule
}

// RequiredStreak returns the promotion streak the engine runs on.
func (e *Engine) RequiredStreak() int {
	return e.requiredStreak
}

// Transition describes what applying one answer did to an item.
type Transition struct {
	Rating       int
	Promoted     bool
	Demoted      bool
	Completed    bool
	IntervalDays int
}

// Apply processes a single answer for a single item on the given study date.
// Every (status, correctness) pair has exactly one defined transition.
func (e *Engine) Apply(it *item.Item, correct bool, responseSeconds float64, today item.Date) Transition {
	rating := EstimateRating(it.History, correct)

	outcome := item.OutcomeIncorrect
	if correct {
		outcome = item.OutcomeCorrect
	}
	it.History = append(it.History, outcome)
	it.ResponseTimes = append(it.ResponseTimes, responseSeconds)
	it.ErrorRatios = append(it.ErrorRatios, it.ErrorRatio())
	it.LastProcessedDate = today
	it.UpdatedAt = today

	transition := Transition{Rating: rating}
	switch it.Status {
	case item.StatusLearning:
		e.applyLearning(it, correct, today, &transition)
	case item.StatusReview:
		e.applyReview(it, correct, rating, responseSeconds, today, &transition)
	}
	return transition
}

func (e *Engine) applyLearning(it *item.Item, correct bool, today item.Date, transition *Transition) {
	if !correct {
		if it.CorrectStreak > 0 {
			it.CorrectStreak--
		}
		it.Stage = 0
		it.NextReviewDate = today
		return
	}

	it.CorrectStreak++
	if it.CorrectStreak < e.requiredStreak {
		return
	}

	// Promotion: the item enters the forgetting schedule at stage 1.
	it.Status = item.StatusReview
	it.Stage = 1
	it.CorrectStreak = 0
	it.NextReviewDate = today.AddDays(e.schedule[0])
	transition.Promoted = true
	transition.IntervalDays = e.schedule[0]
}

func (e *Engine) applyReview(it *item.Item, correct bool, rating int, responseSeconds float64, today item.Date, transition *Transition) {
	daysLate := today.DaysSince(it.NextReviewDate)
	if daysLate < 0 {
		daysLate = 0
	}

	if !correct {
		// Demotion does not go through the interval calculator; the audit
		// entry records the stage's nominal interval and the clamped
		// lateness only for analysis.
		scheduledDays := 0
		if it.Stage >= 1 && it.Stage <= len(e.schedule) {
			scheduledDays = e.schedule[it.Stage-1]
		}
		it.ReviewLog = append(it.ReviewLog, item.ReviewLogEntry{
			Date:              today,
			ScheduledInterval: scheduledDays,
			ActualInterval:    daysLate,
			Correct:           false,
			Rating:            rating,
			ResponseTime:      responseSeconds,
		})

		it.Status = item.StatusLearning
		it.Stage = 0
		it.CorrectStreak = 0
		it.NextReviewDate = today
		transition.Demoted = true
		return
	}

	if it.Stage >= len(e.schedule) {
		// The schedule is exhausted: the item is fully memorized.
		it.Status = item.StatusDone
		it.NextReviewDate = item.Date{}
		transition.Completed = true
		return
	}

	it.Stage++
	baseDays := e.schedule[it.Stage-1]
	finalDays := NextInterval(baseDays, rating, daysLate)

	it.ReviewLog = append(it.ReviewLog, item.ReviewLogEntry{
		Date:              today,
		ScheduledInterval: baseDays,
		ActualInterval:    baseDays + daysLate,
		Correct:           true,
		Rating:            rating,
		ResponseTime:      responseSeconds,
	})
	it.NextReviewDate = today.AddDays(finalDays)
	transition.IntervalDays = finalDays
}
