package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"blocus/internal/domain"
)

// CardRepo implements repository.CardRepository
type CardRepo struct {
	db *sql.DB
}

// NewCardRepo creates a new card repository
func NewCardRepo(db *sql.DB) *CardRepo {
	return &CardRepo{db: db}
}

const cardColumns = `id, user_id, question, answer, category, ease_factor, interval_days, repetitions, next_review_date, last_reviewed, created_at`

// CreateCard inserts a new card with its initial schedule
func (r *CardRepo) CreateCard(ctx context.Context, card domain.Card) error {
	query := `
		INSERT INTO cards (id, user_id, question, answer, category, ease_factor, interval_days, repetitions, next_review_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		card.ID,
		card.UserID,
		card.Question,
		card.Answer,
		card.Category,
		card.Schedule.EaseFactor,
		card.Schedule.Interval,
		card.Schedule.Repetitions,
		card.Schedule.NextReviewDate,
		card.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert card %s: %w", card.ID, err)
	}
	return nil
}

// FindDueCards returns all cards of the user whose review date is at or before asOf
func (r *CardRepo) FindDueCards(ctx context.Context, userID int64, asOf time.Time) ([]domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE user_id = $1 AND next_review_date <= $2
		ORDER BY next_review_date
	`
	rows, err := r.db.QueryContext(ctx, query, userID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to find due cards: %w", err)
	}
	defer rows.Close()

	return scanCards(rows)
}

// UpdateCard writes the scheduling columns of a single card
func (r *CardRepo) UpdateCard(ctx context.Context, userID int64, cardID string, s domain.Schedule) error {
	var lastReviewed sql.NullTime
	if s.LastReviewed != nil {
		lastReviewed = sql.NullTime{Time: *s.LastReviewed, Valid: true}
	}

	query := `
		UPDATE cards
		SET ease_factor = $1, interval_days = $2, repetitions = $3, next_review_date = $4, last_reviewed = $5
		WHERE user_id = $6 AND id = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		s.EaseFactor,
		s.Interval,
		s.Repetitions,
		s.NextReviewDate,
		lastReviewed,
		userID,
		cardID,
	)
	if err != nil {
		return fmt.Errorf("failed to update card %s: %w", cardID, err)
	}

	return expectOneRow(res, cardID)
}

// DeleteCard removes a card owned by the user
func (r *CardRepo) DeleteCard(ctx context.Context, userID int64, cardID string) error {
	query := `DELETE FROM cards WHERE user_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query, userID, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", cardID, err)
	}

	return expectOneRow(res, cardID)
}

// ListCards returns a page of the user's cards, newest first
func (r *CardRepo) ListCards(ctx context.Context, userID int64, limit, offset int) ([]domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	return scanCards(rows)
}

// CountCards returns the number of cards owned by the user
func (r *CardRepo) CountCards(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

// GetDecks returns per-category totals and due counts
func (r *CardRepo) GetDecks(ctx context.Context, userID int64, asOf time.Time) ([]domain.Deck, error) {
	query := `
		SELECT category, COUNT(*) AS total, COUNT(*) FILTER (WHERE next_review_date <= $2) AS due
		FROM cards
		WHERE user_id = $1
		GROUP BY category
		ORDER BY category
	`
	rows, err := r.db.QueryContext(ctx, query, userID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to get decks: %w", err)
	}
	defer rows.Close()

	var decks []domain.Deck
	for rows.Next() {
		var d domain.Deck
		if err := rows.Scan(&d.Category, &d.Total, &d.Due); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		decks = append(decks, d)
	}

	return decks, rows.Err()
}

func scanCards(rows *sql.Rows) ([]domain.Card, error) {
	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		var lastReviewed sql.NullTime
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Question,
			&c.Answer,
			&c.Category,
			&c.Schedule.EaseFactor,
			&c.Schedule.Interval,
			&c.Schedule.Repetitions,
			&c.Schedule.NextReviewDate,
			&lastReviewed,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		if lastReviewed.Valid {
			c.Schedule.LastReviewed = &lastReviewed.Time
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

func expectOneRow(res sql.Result, cardID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for card %s: %w", cardID, err)
	}
	if n == 0 {
		return fmt.Errorf("card %s: %w", cardID, domain.ErrCardNotFound)
	}
	return nil
}
