package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/gereja-member-api/internal/models"
)

// MorningStudyRepository reads morning study sessions together with the
// requesting user's completion flag.
type MorningStudyRepository struct {
	db *sqlx.DB
}

// NewMorningStudyRepository constructs the repository.
func NewMorningStudyRepository(db *sqlx.DB) *MorningStudyRepository {
	return &MorningStudyRepository{db: db}
}

// ListInRange returns sessions starting inside the range that are global or
// belong to the given congregation, with completed reflecting whether the
// user has a completion record for the session.
func (r *MorningStudyRepository) ListInRange(ctx context.Context, congregationID *string, userID string, rng models.DateRange) ([]models.MorningStudySession, error) {
	query := `SELECT s.id, s.congregation_id, s.title, s.scripture, s.start_at,
	(c.user_id IS NOT NULL) AS completed
FROM morning_study_sessions s
LEFT JOIN morning_study_completions c ON c.session_id = s.id AND c.user_id = $1
WHERE s.start_at >= $2 AND s.start_at < $3 AND (s.congregation_id IS NULL OR s.congregation_id = $4)
ORDER BY s.start_at ASC`
	args := []interface{}{userID, rng.Start, rng.End.AddDate(0, 0, 1), congregationID}
	if congregationID == nil {
		query = `SELECT s.id, s.congregation_id, s.title, s.scripture, s.start_at,
	(c.user_id IS NOT NULL) AS completed
FROM morning_study_sessions s
LEFT JOIN morning_study_completions c ON c.session_id = s.id AND c.user_id = $1
WHERE s.start_at >= $2 AND s.start_at < $3 AND s.congregation_id IS NULL
ORDER BY s.start_at ASC`
		args = args[:3]
	}
	var sessions []models.MorningStudySession
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, fmt.Errorf("list morning study sessions: %w", err)
	}
	return sessions, nil
}
