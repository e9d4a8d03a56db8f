package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveToday(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		cutoffHour int
		want       string
	}{
		{
			name:       "daytime resolves to the calendar date",
			now:        time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC),
			cutoffHour: 3,
			want:       "2025-06-15",
		},
		{
			name:       "just past midnight still belongs to yesterday",
			now:        time.Date(2025, 6, 15, 1, 30, 0, 0, time.UTC),
			cutoffHour: 3,
			want:       "2025-06-14",
		},
		{
			name:       "exactly at the cutoff is a new day",
			now:        time.Date(2025, 6, 15, 3, 0, 0, 0, time.UTC),
			cutoffHour: 3,
			want:       "2025-06-15",
		},
		{
			name:       "midnight cutoff never shifts the date",
			now:        time.Date(2025, 6, 15, 0, 0, 1, 0, time.UTC),
			cutoffHour: 0,
			want:       "2025-06-15",
		},
		{
			name:       "month boundary",
			now:        time.Date(2025, 7, 1, 2, 0, 0, 0, time.UTC),
			cutoffHour: 3,
			want:       "2025-06-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveToday(tt.now, tt.cutoffHour).String())
		})
	}
}
