package item

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Outcome is one recorded answer result. The single-letter symbols match the
// data files this tool has always written.
type Outcome string

const (
	OutcomeCorrect   Outcome = "O"
	OutcomeIncorrect Outcome = "X"
)

// History is the append-only sequence of answer outcomes for an item,
// stored as a JSON array column.
type History []Outcome

// TrailingCorrectRun returns the length of the run of correct outcomes at
// the end of the history.
func (h History) TrailingCorrectRun() int {
	run := 0
	for i := len(h) - 1; i >= 0; i-- {
		if h[i] != OutcomeCorrect {
			break
		}
		run++
	}
	return run
}

// Value implements driver.Valuer.
func (h History) Value() (driver.Value, error) {
	return marshalSequence(h)
}

// Scan implements sql.Scanner.
func (h *History) Scan(src any) error {
	return scanSequence(src, h)
}

// FloatSeries is an append-only sequence of float measurements
// (response times in seconds, running error ratios), stored as a JSON array.
type FloatSeries []float64

// Value implements driver.Valuer.
func (s FloatSeries) Value() (driver.Value, error) {
	return marshalSequence(s)
}

// Scan implements sql.Scanner.
func (s *FloatSeries) Scan(src any) error {
	return scanSequence(src, s)
}

// ReviewLogEntry is a structured audit record of one review. The JSON keys
// match the legacy data files so that migrated history stays readable.
type ReviewLogEntry struct {
	Date              Date    `json:"date"`
	ScheduledInterval int     `json:"scheduled_interval"`
	ActualInterval    int     `json:"actual_interval"`
	Correct           bool    `json:"is_correct"`
	Rating            int     `json:"r"`
	ResponseTime      float64 `json:"response_time"`
}

// ReviewLog is the append-only review audit trail, stored as a JSON array.
// It never feeds back into scheduling decisions.
type ReviewLog []ReviewLogEntry

// Value implements driver.Valuer.
func (l ReviewLog) Value() (driver.Value, error) {
	return marshalSequence(l)
}

// Scan implements sql.Scanner.
func (l *ReviewLog) Scan(src any) error {
	return scanSequence(src, l)
}

// marshalSequence serializes a sequence column, writing an empty JSON array
// instead of null so the stored default stays uniform.
func marshalSequence(sequence any) (driver.Value, error) {
	data, err := json.Marshal(sequence)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(%T) > %w", sequence, err)
	}
	if string(data) == "null" {
		return "[]", nil
	}
	return string(data), nil
}

func scanSequence[T any](src any, dst *T) error {
	var data []byte
	switch value := src.(type) {
	case nil:
		data = []byte("[]")
	case string:
		data = []byte(value)
	case []byte:
		data = value
	default:
		return fmt.Errorf("unsupported sequence column type %T", src)
	}
	if len(data) == 0 {
		data = []byte("[]")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("json.Unmarshal(%T) > %w", dst, err)
	}
	return nil
}
