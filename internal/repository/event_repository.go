package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/gereja-member-api/internal/models"
)

// EventRepository reads congregation and global events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an event repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, congregation_id, title, description, location, start_at, end_at, is_all_day, status, created_by, created_at, updated_at`

// ListInRange returns published events starting inside the inclusive date
// range, either global (NULL congregation_id) or belonging to the given
// congregation. A nil congregationID restricts the result to global events.
func (r *EventRepository) ListInRange(ctx context.Context, congregationID *string, rng models.DateRange) ([]models.CongregationEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM events
WHERE status = $1 AND start_at >= $2 AND start_at < $3 AND (congregation_id IS NULL OR congregation_id = $4)
ORDER BY start_at ASC`, eventColumns)
	var events []models.CongregationEvent
	args := []interface{}{models.EventStatusPublished, rng.Start, rng.End.AddDate(0, 0, 1), congregationID}
	if congregationID == nil {
		query = fmt.Sprintf(`SELECT %s FROM events
WHERE status = $1 AND start_at >= $2 AND start_at < $3 AND congregation_id IS NULL
ORDER BY start_at ASC`, eventColumns)
		args = args[:3]
	}
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("list events in range: %w", err)
	}
	return events, nil
}

// ListUpcoming returns the next published events at or after now.
func (r *EventRepository) ListUpcoming(ctx context.Context, congregationID *string, now time.Time, limit int) ([]models.CongregationEvent, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(`SELECT %s FROM events
WHERE status = $1 AND start_at >= $2 AND (congregation_id IS NULL OR congregation_id = $3)
ORDER BY start_at ASC LIMIT %d`, eventColumns, limit)
	args := []interface{}{models.EventStatusPublished, now, congregationID}
	if congregationID == nil {
		query = fmt.Sprintf(`SELECT %s FROM events
WHERE status = $1 AND start_at >= $2 AND congregation_id IS NULL
ORDER BY start_at ASC LIMIT %d`, eventColumns, limit)
		args = args[:2]
	}
	var events []models.CongregationEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return events, nil
}
