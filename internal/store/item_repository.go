// Package store provides the persistence layer for items and daily
// statistics.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/recall/internal/item"
)

// ErrNotFound is returned when a mutation targets an item id absent from the
// store.
var ErrNotFound = errors.New("item not found")

// ItemRepository defines operations for managing memorization items. All
// reads and writes are keyed by item id and immediately consistent.
type ItemRepository interface {
	Get(ctx context.Context, id int64) (*item.Item, error)
	ListAll(ctx context.Context) ([]item.Item, error)
	ListDueLearning(ctx context.Context, requiredStreak int) ([]item.Item, error)
	ListDueReview(ctx context.Context, today item.Date) ([]item.Item, error)
	Insert(ctx context.Context, items []item.Item) error
	Update(ctx context.Context, it *item.Item) error
	UpdateText(ctx context.Context, id int64, question, answer string) error
	SetPostponed(ctx context.Context, ids []int64) error
	ResetStalePostponed(ctx context.Context, today item.Date) error
	DeleteCreatedOn(ctx context.Context, date item.Date) (int64, error)
	CountAll(ctx context.Context) (int, error)
	CountReviewDueBy(ctx context.Context, date item.Date) (int, error)
	CountReviewDueOn(ctx context.Context, date item.Date) (int, error)
	CountLearningCreatedOn(ctx context.Context, date item.Date) (int, error)
}

// DBItemRepository implements ItemRepository using SQLite.
type DBItemRepository struct {
	db *sqlx.DB
}

// NewDBItemRepository creates a new DBItemRepository.
func NewDBItemRepository(db *sqlx.DB) *DBItemRepository {
	return &DBItemRepository{db: db}
}

const itemColumns = `item_id AS id, question, answer, status, stage, correct_streak,
	next_review_date, last_processed_date, postponed, created_at, updated_at,
	history, response_times, error_ratios, review_log`

// Get returns the item with the given id, or ErrNotFound.
func (r *DBItemRepository) Get(ctx context.Context, id int64) (*item.Item, error) {
	var it item.Item
	err := r.db.GetContext(ctx, &it,
		"SELECT "+itemColumns+" FROM items WHERE item_id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(item %d) > %w", id, err)
	}
	return &it, nil
}

// ListAll returns every item ordered by id.
func (r *DBItemRepository) ListAll(ctx context.Context) ([]item.Item, error) {
	var items []item.Item
	if err := r.db.SelectContext(ctx, &items,
		"SELECT "+itemColumns+" FROM items ORDER BY item_id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(items) > %w", err)
	}
	return items, nil
}

// ListDueLearning returns non-postponed learning items still short of the
// promotion streak, ordered by creation date.
func (r *DBItemRepository) ListDueLearning(ctx context.Context, requiredStreak int) ([]item.Item, error) {
	var items []item.Item
	if err := r.db.SelectContext(ctx, &items,
		"SELECT "+itemColumns+` FROM items
		WHERE status = ? AND correct_streak < ? AND postponed = 0
		ORDER BY created_at, item_id`,
		item.StatusLearning, requiredStreak); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due learning items) > %w", err)
	}
	return items, nil
}

// ListDueReview returns non-postponed review items due on or before today.
func (r *DBItemRepository) ListDueReview(ctx context.Context, today item.Date) ([]item.Item, error) {
	var items []item.Item
	if err := r.db.SelectContext(ctx, &items,
		"SELECT "+itemColumns+` FROM items
		WHERE status = ? AND postponed = 0
			AND next_review_date IS NOT NULL AND next_review_date <= ?
		ORDER BY next_review_date, item_id`,
		item.StatusReview, today); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due review items) > %w", err)
	}
	return items, nil
}

// Insert adds a batch of new items in a single transaction, so a failing
// batch leaves no partial insert behind.
func (r *DBItemRepository) Insert(ctx context.Context, items []item.Item) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i := range items {
		result, err := tx.NamedExecContext(ctx,
			`INSERT INTO items (question, answer, status, stage, correct_streak,
				next_review_date, last_processed_date, postponed, created_at, updated_at,
				history, response_times, error_ratios, review_log)
			VALUES (:question, :answer, :status, :stage, :correct_streak,
				:next_review_date, :last_processed_date, :postponed, :created_at, :updated_at,
				:history, :response_times, :error_ratios, :review_log)`,
			items[i])
		if err != nil {
			return fmt.Errorf("tx.NamedExecContext(insert item) > %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("result.LastInsertId() > %w", err)
		}
		items[i].ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// Update flushes every mutable field of the item back to the store as one
// atomic write.
func (r *DBItemRepository) Update(ctx context.Context, it *item.Item) error {
	result, err := r.db.NamedExecContext(ctx,
		`UPDATE items SET
			question = :question,
			answer = :answer,
			status = :status,
			stage = :stage,
			correct_streak = :correct_streak,
			next_review_date = :next_review_date,
			last_processed_date = :last_processed_date,
			postponed = :postponed,
			updated_at = :updated_at,
			history = :history,
			response_times = :response_times,
			error_ratios = :error_ratios,
			review_log = :review_log
		WHERE item_id = :id`,
		it)
	if err != nil {
		return fmt.Errorf("db.NamedExecContext(update item %d) > %w", it.ID, err)
	}
	return requireRow(result, it.ID)
}

// UpdateText replaces the question and answer payloads of an item.
func (r *DBItemRepository) UpdateText(ctx context.Context, id int64, question, answer string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE items SET question = ?, answer = ? WHERE item_id = ?",
		question, answer, id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update item %d text) > %w", id, err)
	}
	return requireRow(result, id)
}

// SetPostponed flags the given items as deferred past today's workload cap.
func (r *DBItemRepository) SetPostponed(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In("UPDATE items SET postponed = 1 WHERE item_id IN (?)", ids)
	if err != nil {
		return fmt.Errorf("sqlx.In() > %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db.ExecContext(set postponed) > %w", err)
	}
	return nil
}

// ResetStalePostponed clears postponement flags that were set on an earlier
// study day. A postponement is only sticky within its own day.
func (r *DBItemRepository) ResetStalePostponed(ctx context.Context, today item.Date) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE items SET postponed = 0
		WHERE postponed = 1 AND (last_processed_date IS NULL OR last_processed_date != ?)`,
		today); err != nil {
		return fmt.Errorf("db.ExecContext(reset postponed) > %w", err)
	}
	return nil
}

// DeleteCreatedOn deletes every item created on the given date and returns
// how many were removed.
func (r *DBItemRepository) DeleteCreatedOn(ctx context.Context, date item.Date) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE created_at = ?", date)
	if err != nil {
		return 0, fmt.Errorf("db.ExecContext(delete items) > %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return deleted, nil
}

// CountAll returns the total number of items.
func (r *DBItemRepository) CountAll(ctx context.Context) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM items")
}

// CountReviewDueBy returns how many review items are due on or before date.
func (r *DBItemRepository) CountReviewDueBy(ctx context.Context, date item.Date) (int, error) {
	return r.count(ctx,
		"SELECT COUNT(*) FROM items WHERE status = ? AND next_review_date IS NOT NULL AND next_review_date <= ?",
		item.StatusReview, date)
}

// CountReviewDueOn returns how many review items are due exactly on date.
func (r *DBItemRepository) CountReviewDueOn(ctx context.Context, date item.Date) (int, error) {
	return r.count(ctx,
		"SELECT COUNT(*) FROM items WHERE status = ? AND next_review_date = ?",
		item.StatusReview, date)
}

// CountLearningCreatedOn returns how many learning items were created on date.
func (r *DBItemRepository) CountLearningCreatedOn(ctx context.Context, date item.Date) (int, error) {
	return r.count(ctx,
		"SELECT COUNT(*) FROM items WHERE status = ? AND created_at = ?",
		item.StatusLearning, date)
}

func (r *DBItemRepository) count(ctx context.Context, query string, args ...any) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("db.GetContext(count) > %w", err)
	}
	return count, nil
}

func requireRow(result sql.Result, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return nil
}
