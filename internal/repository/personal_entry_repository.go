package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/gereja-member-api/internal/models"
)

// PersonalEntryRepository reads a member's own diary calendar entries.
type PersonalEntryRepository struct {
	db *sqlx.DB
}

// NewPersonalEntryRepository constructs the repository.
func NewPersonalEntryRepository(db *sqlx.DB) *PersonalEntryRepository {
	return &PersonalEntryRepository{db: db}
}

const personalEntryColumns = `id, user_id, title, start_at, end_at, is_all_day, location, color, status`

// ListInRange returns the user's active entries starting inside the range.
func (r *PersonalEntryRepository) ListInRange(ctx context.Context, userID string, rng models.DateRange) ([]models.PersonalEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM personal_entries
WHERE user_id = $1 AND status = $2 AND start_at >= $3 AND start_at < $4
ORDER BY start_at ASC`, personalEntryColumns)
	var entries []models.PersonalEntry
	if err := r.db.SelectContext(ctx, &entries, query, userID, models.PersonalEntryActive, rng.Start, rng.End.AddDate(0, 0, 1)); err != nil {
		return nil, fmt.Errorf("list personal entries in range: %w", err)
	}
	return entries, nil
}

// ListUpcoming returns the user's next active entries at or after now.
func (r *PersonalEntryRepository) ListUpcoming(ctx context.Context, userID string, now time.Time, limit int) ([]models.PersonalEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(`SELECT %s FROM personal_entries
WHERE user_id = $1 AND status = $2 AND start_at >= $3
ORDER BY start_at ASC LIMIT %d`, personalEntryColumns, limit)
	var entries []models.PersonalEntry
	if err := r.db.SelectContext(ctx, &entries, query, userID, models.PersonalEntryActive, now); err != nil {
		return nil, fmt.Errorf("list upcoming personal entries: %w", err)
	}
	return entries, nil
}
