package scheduler

import "math"

// minRatingFactor floors the exponential rating penalty so a weak rating
// never shrinks an interval below 30% of its nominal length.
const minRatingFactor = 0.3

// NextInterval converts a nominal schedule interval into the concrete number
// of days until the next review.
//
// A high rating keeps the interval close to the textbook curve while lower
// ratings shorten it exponentially. Answering late is evidence the item
// survived a longer gap than scheduled, so the next interval is stretched
// proportionally to the overdue ratio. The result never drops below one day,
// which prevents same-day re-scheduling loops.
func NextInterval(baseDays int, rating int, daysLate int) int {
	ratingFactor := math.Max(minRatingFactor, math.Exp(-0.3*float64(5-rating)))
	adjusted := float64(baseDays) * ratingFactor

	latenessRatio := 0.0
	if baseDays > 0 {
		latenessRatio = float64(daysLate) / float64(baseDays)
	}

	finalDays := int(adjusted * (1 + latenessRatio))
	if finalDays < 1 {
		return 1
	}
	return finalDays
}
