package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"blocus/internal/domain"
)

// SessionRepo implements repository.SessionRepository.
// Days are bucketed in the configured time zone.
type SessionRepo struct {
	db       *sql.DB
	timezone string
}

// NewSessionRepo creates a new session log repository
func NewSessionRepo(db *sql.DB, timezone string) *SessionRepo {
	return &SessionRepo{db: db, timezone: timezone}
}

// LogSession appends a completed session to the log
func (r *SessionRepo) LogSession(ctx context.Context, userID int64, log domain.SessionLog) error {
	query := `
		INSERT INTO review_sessions (user_id, reviewed_at, cards_reviewed)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, log.Date, log.CardsReviewed); err != nil {
		return fmt.Errorf("failed to log session: %w", err)
	}
	return nil
}

// GetSessionDates returns the dates of all logged sessions, newest first
func (r *SessionRepo) GetSessionDates(ctx context.Context, userID int64) ([]time.Time, error) {
	query := `
		SELECT reviewed_at
		FROM review_sessions
		WHERE user_id = $1
		ORDER BY reviewed_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan session date: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

// GetDaysWithSessions returns days with reviewed card totals, newest first
func (r *SessionRepo) GetDaysWithSessions(ctx context.Context, userID int64, limit, offset int) ([]domain.Day, error) {
	query := `
		SELECT DATE(reviewed_at AT TIME ZONE $2) AS day, SUM(cards_reviewed) AS count
		FROM review_sessions
		WHERE user_id = $1
		GROUP BY DATE(reviewed_at AT TIME ZONE $2)
		ORDER BY day DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.QueryContext(ctx, query, userID, r.timezone, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get days with sessions: %w", err)
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		var d domain.Day
		if err := rows.Scan(&d.Date, &d.CardsReviewed); err != nil {
			return nil, fmt.Errorf("failed to scan day row: %w", err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// GetTotalDaysCount returns total number of days with sessions
func (r *SessionRepo) GetTotalDaysCount(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT COUNT(DISTINCT DATE(reviewed_at AT TIME ZONE $2))
		FROM review_sessions
		WHERE user_id = $1
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, r.timezone).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count session days: %w", err)
	}
	return count, nil
}

// CleanOldSessions deletes session logs older than specified days
func (r *SessionRepo) CleanOldSessions(ctx context.Context, days int) error {
	query := `
		DELETE FROM review_sessions
		WHERE reviewed_at < NOW() - INTERVAL '1 day' * $1
	`
	if _, err := r.db.ExecContext(ctx, query, days); err != nil {
		return fmt.Errorf("failed to clean old sessions: %w", err)
	}
	return nil
}
