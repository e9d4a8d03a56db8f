package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/recall/internal/testutil"
)

func TestDBStatsRepository_ElapsedRoundTrip(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repository := NewDBStatsRepository(db)
	ctx := context.Background()
	today := mustDate(t, "2025-06-15")

	elapsed, err := repository.GetElapsed(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 0.0, elapsed, "unknown date reads as zero")

	require.NoError(t, repository.SetElapsed(ctx, today, 125.5))
	elapsed, err = repository.GetElapsed(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 125.5, elapsed)

	// A second write for the same date replaces, never accumulates.
	require.NoError(t, repository.SetElapsed(ctx, today, 300))
	elapsed, err = repository.GetElapsed(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 300.0, elapsed)

	elapsed, err = repository.GetElapsed(ctx, today.AddDays(1))
	require.NoError(t, err)
	assert.Equal(t, 0.0, elapsed, "dates are independent records")
}
