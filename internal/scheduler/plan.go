package scheduler

import (
	"sort"

	"github.com/at-ishikawa/recall/internal/item"
)

// Planner selects the items eligible for one study date and enforces the
// daily workload cap. It is pure: callers persist the postponement flags it
// decides on, and it is re-run on every scheduling pass so a due set that
// grows mid-session is capped again deterministically.
type Planner struct {
	RequiredStreak int
	DailyLimit     int
}

// NewPlanner creates a planner with the given promotion streak and daily cap.
func NewPlanner(requiredStreak, dailyLimit int) Planner {
	return Planner{
		RequiredStreak: requiredStreak,
		DailyLimit:     dailyLimit,
	}
}

// Plan is the outcome of one scheduling pass: the ordered due sets that stay
// active today and the item ids deferred past the workload cap.
type Plan struct {
	Learning  []int64
	Review    []int64
	Postponed []int64
}

// Build partitions the given items into today's due sets.
//
// Priority for cap enforcement: learning items created today first, then
// older learning items by creation date ascending, then due review items.
// The first DailyLimit items stay active; the rest are postponed without
// touching their status, stage or due date.
func (p Planner) Build(items []item.Item, today item.Date) Plan {
	var todayNew, older, review []item.Item
	for _, it := range items {
		if it.Postponed {
			continue
		}
		switch {
		case it.Status == item.StatusLearning && it.CorrectStreak < p.RequiredStreak:
			if it.CreatedAt.Equal(today) {
				todayNew = append(todayNew, it)
			} else {
				older = append(older, it)
			}
		case it.Status == item.StatusReview && !it.NextReviewDate.IsZero() && !it.NextReviewDate.After(today):
			review = append(review, it)
		}
	}
	sort.SliceStable(older, func(i, j int) bool {
		return older[i].CreatedAt.Before(older[j].CreatedAt)
	})

	plan := Plan{}
	kept := 0
	keep := func(id int64, due *[]int64) {
		if kept < p.DailyLimit {
			*due = append(*due, id)
			kept++
			return
		}
		plan.Postponed = append(plan.Postponed, id)
	}
	for _, it := range todayNew {
		keep(it.ID, &plan.Learning)
	}
	for _, it := range older {
		keep(it.ID, &plan.Learning)
	}
	for _, it := range review {
		keep(it.ID, &plan.Review)
	}
	return plan
}
