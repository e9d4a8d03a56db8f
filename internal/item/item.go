// Package item provides the memorization item domain model and the typed
// sequence columns it persists.
package item

// Status represents an item's position in the memorization lifecycle.
type Status string

const (
	// StatusLearning is the initial status: the item must be answered
	// correctly several times in a row before it is trusted to intervals.
	StatusLearning Status = "learning"
	// StatusReview means the item follows the forgetting schedule.
	StatusReview Status = "review"
	// StatusDone is terminal: the item exhausted the schedule with
	// all-correct reviews.
	StatusDone Status = "done"
)

// Item is the unit of memorization: one question/answer pair together with
// its scheduling state and its append-only answer history.
type Item struct {
	ID                int64       `db:"id"`
	Question          string      `db:"question"`
	Answer            string      `db:"answer"`
	Status            Status      `db:"status"`
	Stage             int         `db:"stage"`
	CorrectStreak     int         `db:"correct_streak"`
	NextReviewDate    Date        `db:"next_review_date"`
	LastProcessedDate Date        `db:"last_processed_date"`
	Postponed         bool        `db:"postponed"`
	CreatedAt         Date        `db:"created_at"`
	UpdatedAt         Date        `db:"updated_at"`
	History           History     `db:"history"`
	ResponseTimes     FloatSeries `db:"response_times"`
	ErrorRatios       FloatSeries `db:"error_ratios"`
	ReviewLog         ReviewLog   `db:"review_log"`
}

// New creates a fresh learning item due on the given date.
func New(question, answer string, today Date) Item {
	return Item{
		Question:          question,
		Answer:            answer,
		Status:            StatusLearning,
		Stage:             0,
		CorrectStreak:     0,
		NextReviewDate:    today,
		LastProcessedDate: today,
		CreatedAt:         today,
		History:           History{},
		ResponseTimes:     FloatSeries{},
		ErrorRatios:       FloatSeries{},
		ReviewLog:         ReviewLog{},
	}
}

// ErrorRatio returns the running incorrect-answer ratio over the full history.
func (i Item) ErrorRatio() float64 {
	if len(i.History) == 0 {
		return 0
	}
	incorrect := 0
	for _, outcome := range i.History {
		if outcome == OutcomeIncorrect {
			incorrect++
		}
	}
	return float64(incorrect) / float64(len(i.History))
}
