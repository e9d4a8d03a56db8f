// Package scheduler implements the spaced-repetition decision logic: the
// study-day calendar, the answer rating estimate, the review interval
// computation, the item state machine and the daily workload plan.
package scheduler

import (
	"time"

	"github.com/at-ishikawa/recall/internal/item"
)

// DefaultDayCutoffHour is the wall-clock hour before which a run still
// belongs to the previous study day, so a session running past midnight
// keeps its date.
const DefaultDayCutoffHour = 3

// ResolveToday maps a wall-clock time to the current study date. Callers
// resolve it once per run and thread the value through every component, so a
// session straddling the cutoff never changes date mid-session.
func ResolveToday(now time.Time, cutoffHour int) item.Date {
	if now.Hour() < cutoffHour {
		now = now.AddDate(0, 0, -1)
	}
	return item.NewDate(now)
}
