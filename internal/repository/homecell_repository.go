package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/gereja-member-api/internal/models"
)

// HomecellRepository resolves homecell memberships and meeting schedules.
type HomecellRepository struct {
	db *sqlx.DB
}

// NewHomecellRepository constructs the repository.
func NewHomecellRepository(db *sqlx.DB) *HomecellRepository {
	return &HomecellRepository{db: db}
}

// FindActiveMembership returns the user's active homecell membership joined
// with the homecell's name and configured default meeting time. sql.ErrNoRows
// propagates when the user belongs to no homecell.
func (r *HomecellRepository) FindActiveMembership(ctx context.Context, userID string) (*models.HomecellMembership, error) {
	const query = `SELECT m.homecell_id, m.user_id, h.name AS homecell_name, h.default_meeting_time
FROM homecell_members m
JOIN homecells h ON h.id = m.homecell_id
WHERE m.user_id = $1 AND m.status = 'ACTIVE'
LIMIT 1`
	var membership models.HomecellMembership
	if err := r.db.GetContext(ctx, &membership, query, userID); err != nil {
		return nil, err
	}
	return &membership, nil
}

// ListMeetings returns the homecell's scheduled meetings inside the range.
func (r *HomecellRepository) ListMeetings(ctx context.Context, homecellID string, rng models.DateRange) ([]models.HomecellMeeting, error) {
	const query = `SELECT id, homecell_id, meeting_date, meeting_time, topic, location
FROM homecell_meetings
WHERE homecell_id = $1 AND meeting_date >= $2 AND meeting_date <= $3
ORDER BY meeting_date ASC`
	var meetings []models.HomecellMeeting
	if err := r.db.SelectContext(ctx, &meetings, query, homecellID, rng.Start, rng.End); err != nil {
		return nil, fmt.Errorf("list homecell meetings: %w", err)
	}
	return meetings, nil
}
