// Package statistics aggregates answer history into study reports.
package statistics

import (
	"sort"

	"github.com/at-ishikawa/recall/internal/item"
)

// GlobalStatistics holds totals across the whole item collection.
type GlobalStatistics struct {
	TotalItems       int
	LearningItems    int
	ReviewItems      int
	DoneItems        int
	PostponedItems   int
	CorrectAnswers   int
	IncorrectAnswers int
	AccuracyRatio    float64 // correct / (correct + incorrect)
	MeanResponseSec  float64
	MedianResponseSec float64
}

// StageStatistics holds aggregates for one schedule stage.
type StageStatistics struct {
	Stage           int
	ItemCount       int
	CorrectAnswers  int
	TotalAnswers    int
	AccuracyRatio   float64
	MeanResponseSec float64
}

// HardItem is an item ranked by its running error ratio.
type HardItem struct {
	ID         int64
	Question   string
	ErrorRatio float64
	Attempts   int
}

// Result is a full study analysis report.
type Result struct {
	Global    GlobalStatistics
	Stages    []StageStatistics
	HardItems []HardItem
}

// Calculate aggregates the answer history of all items into a report.
// hardItemLimit bounds the hardest-items ranking; 0 disables it.
func Calculate(items []item.Item, hardItemLimit int) Result {
	var result Result
	var responseTimes []float64
	stages := make(map[int]*StageStatistics)

	for _, it := range items {
		result.Global.TotalItems++
		switch it.Status {
		case item.StatusLearning:
			result.Global.LearningItems++
		case item.StatusReview:
			result.Global.ReviewItems++
		case item.StatusDone:
			result.Global.DoneItems++
		}
		if it.Postponed {
			result.Global.PostponedItems++
		}

		correct := 0
		for _, outcome := range it.History {
			if outcome == item.OutcomeCorrect {
				correct++
			}
		}
		incorrect := len(it.History) - correct
		result.Global.CorrectAnswers += correct
		result.Global.IncorrectAnswers += incorrect
		responseTimes = append(responseTimes, it.ResponseTimes...)

		stage := stages[it.Stage]
		if stage == nil {
			stage = &StageStatistics{Stage: it.Stage}
			stages[it.Stage] = stage
		}
		stage.ItemCount++
		stage.CorrectAnswers += correct
		stage.TotalAnswers += len(it.History)
		for _, seconds := range it.ResponseTimes {
			stage.MeanResponseSec += seconds
		}

		if hardItemLimit > 0 && len(it.History) > 0 {
			result.HardItems = append(result.HardItems, HardItem{
				ID:         it.ID,
				Question:   it.Question,
				ErrorRatio: it.ErrorRatio(),
				Attempts:   len(it.History),
			})
		}
	}

	finishGlobal(&result.Global, responseTimes)
	result.Stages = finishStages(stages)
	result.HardItems = rankHardItems(result.HardItems, hardItemLimit)
	return result
}

func finishGlobal(global *GlobalStatistics, responseTimes []float64) {
	totalAnswers := global.CorrectAnswers + global.IncorrectAnswers
	if totalAnswers > 0 {
		global.AccuracyRatio = float64(global.CorrectAnswers) / float64(totalAnswers)
	}
	if len(responseTimes) == 0 {
		return
	}

	sum := 0.0
	for _, seconds := range responseTimes {
		sum += seconds
	}
	global.MeanResponseSec = sum / float64(len(responseTimes))

	sorted := append([]float64{}, responseTimes...)
	sort.Float64s(sorted)
	middle := len(sorted) / 2
	if len(sorted)%2 == 0 {
		global.MedianResponseSec = (sorted[middle-1] + sorted[middle]) / 2
	} else {
		global.MedianResponseSec = sorted[middle]
	}
}

func finishStages(stages map[int]*StageStatistics) []StageStatistics {
	result := make([]StageStatistics, 0, len(stages))
	for _, stage := range stages {
		if stage.TotalAnswers > 0 {
			stage.AccuracyRatio = float64(stage.CorrectAnswers) / float64(stage.TotalAnswers)
			stage.MeanResponseSec /= float64(stage.TotalAnswers)
		} else {
			stage.MeanResponseSec = 0
		}
		result = append(result, *stage)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Stage < result[j].Stage
	})
	return result
}

func rankHardItems(items []HardItem, limit int) []HardItem {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ErrorRatio != items[j].ErrorRatio {
			return items[i].ErrorRatio > items[j].ErrorRatio
		}
		return items[i].Attempts > items[j].Attempts
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
