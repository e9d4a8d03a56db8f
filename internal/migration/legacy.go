// Package migration imports the legacy JSON data file into the SQLite store.
package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/at-ishikawa/recall/internal/item"
	"github.com/at-ishikawa/recall/internal/store"
)

// legacyFile mirrors the layout of the JSON data file older versions of this
// tool wrote.
type legacyFile struct {
	Items      map[string]legacyItem `json:"items"`
	DailyStats map[string]float64    `json:"daily_stats"`
}

// legacyItem is one dynamically-typed record row. Optional fields get their
// explicit defaults at load time, never at point of use.
type legacyItem struct {
	Question          string           `json:"question"`
	Answer            string           `json:"answer"`
	Status            string           `json:"status"`
	Stage             int              `json:"stage"`
	CorrectStreak     int              `json:"correct_streak"`
	NextReview        item.Date        `json:"next_review"`
	CreatedAt         item.Date        `json:"created_at"`
	LastProcessedDate item.Date        `json:"last_processed_date"`
	Postponed         bool             `json:"postponed"`
	History           item.History     `json:"history"`
	ResponseTimes     item.FloatSeries `json:"response_times"`
	ErrorRatios       item.FloatSeries `json:"error_ratios"`
	ReviewLog         item.ReviewLog   `json:"review_log"`
}

// Summary reports what a migration imported.
type Summary struct {
	Items      int
	DailyStats int
}

// ImportLegacyFile reads a legacy JSON data file and inserts its items and
// daily statistics into the store. It refuses to run against a store that
// already holds items, so a migration can never mix two datasets.
func ImportLegacyFile(
	ctx context.Context,
	path string,
	items store.ItemRepository,
	stats store.StatsRepository,
	today item.Date,
) (Summary, error) {
	existing, err := items.CountAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("items.CountAll() > %w", err)
	}
	if existing > 0 {
		return Summary{}, fmt.Errorf("the items table already holds %d items; migration requires an empty database", existing)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	var file legacyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Summary{}, fmt.Errorf("json.Unmarshal(%s) > %w", path, err)
	}

	converted := make([]item.Item, 0, len(file.Items))
	for _, key := range sortedKeys(file.Items) {
		converted = append(converted, convertItem(file.Items[key], today))
	}
	if err := items.Insert(ctx, converted); err != nil {
		return Summary{}, fmt.Errorf("items.Insert() > %w", err)
	}

	imported := 0
	for date, seconds := range file.DailyStats {
		parsed, err := item.ParseDate(date)
		if err != nil {
			return Summary{}, fmt.Errorf("daily_stats key %q > %w", date, err)
		}
		if err := stats.SetElapsed(ctx, parsed, seconds); err != nil {
			return Summary{}, fmt.Errorf("stats.SetElapsed(%s) > %w", date, err)
		}
		imported++
	}

	return Summary{Items: len(converted), DailyStats: imported}, nil
}

// sortedKeys orders legacy ids numerically so insertion order matches the
// original numbering.
func sortedKeys(items map[string]legacyItem) []string {
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		left, leftErr := strconv.Atoi(keys[i])
		right, rightErr := strconv.Atoi(keys[j])
		if leftErr != nil || rightErr != nil {
			return keys[i] < keys[j]
		}
		return left < right
	})
	return keys
}

func convertItem(legacy legacyItem, today item.Date) item.Item {
	converted := item.New(legacy.Question, legacy.Answer, today)

	converted.Status = item.Status(legacy.Status)
	if converted.Status == "" {
		converted.Status = item.StatusLearning
	}
	converted.Stage = legacy.Stage
	converted.CorrectStreak = legacy.CorrectStreak
	converted.NextReviewDate = legacy.NextReview
	converted.Postponed = legacy.Postponed
	if !legacy.CreatedAt.IsZero() {
		converted.CreatedAt = legacy.CreatedAt
	}
	if !legacy.LastProcessedDate.IsZero() {
		converted.LastProcessedDate = legacy.LastProcessedDate
	}
	if legacy.History != nil {
		converted.History = legacy.History
	}
	if legacy.ResponseTimes != nil {
		converted.ResponseTimes = legacy.ResponseTimes
	}
	if legacy.ErrorRatios != nil {
		converted.ErrorRatios = legacy.ErrorRatios
	}
	if legacy.ReviewLog != nil {
		converted.ReviewLog = legacy.ReviewLog
	}

	// Learning items must always carry a due date; only done items may not.
	if converted.NextReviewDate.IsZero() && converted.Status != item.StatusDone {
		converted.NextReviewDate = today
	}
	return converted
}
