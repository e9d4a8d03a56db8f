package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/recall/internal/item"
)

// StatsRepository defines operations for the per-date study time records.
type StatsRepository interface {
	GetElapsed(ctx context.Context, date item.Date) (float64, error)
	SetElapsed(ctx context.Context, date item.Date, seconds float64) error
}

// DBStatsRepository implements StatsRepository using SQLite.
type DBStatsRepository struct {
	db *sqlx.DB
}

// NewDBStatsRepository creates a new DBStatsRepository.
func NewDBStatsRepository(db *sqlx.DB) *DBStatsRepository {
	return &DBStatsRepository{db: db}
}

// GetElapsed returns the accumulated study seconds for a date, 0 when the
// date has no record yet.
func (r *DBStatsRepository) GetElapsed(ctx context.Context, date item.Date) (float64, error) {
	var elapsed float64
	err := r.db.GetContext(ctx, &elapsed,
		"SELECT elapsed_today FROM daily_stats WHERE date = ?", date)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("db.GetContext(daily_stats %s) > %w", date, err)
	}
	return elapsed, nil
}

// SetElapsed stores the accumulated study seconds for a date, creating the
// record on first write.
func (r *DBStatsRepository) SetElapsed(ctx context.Context, date item.Date, seconds float64) error {
	if _, err := r.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO daily_stats (date, elapsed_today) VALUES (?, ?)",
		date, seconds); err != nil {
		return fmt.Errorf("db.ExecContext(daily_stats %s) > %w", date, err)
	}
	return nil
}
