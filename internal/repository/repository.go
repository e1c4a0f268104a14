package repository

import (
	"context"
	"time"

	"blocus/internal/domain"
)

// CardRepository defines card data operations
type CardRepository interface {
	CreateCard(ctx context.Context, card domain.Card) error
	FindDueCards(ctx context.Context, userID int64, asOf time.Time) ([]domain.Card, error)
	UpdateCard(ctx context.Context, userID int64, cardID string, schedule domain.Schedule) error
	DeleteCard(ctx context.Context, userID int64, cardID string) error
	ListCards(ctx context.Context, userID int64, limit, offset int) ([]domain.Card, error)
	CountCards(ctx context.Context, userID int64) (int, error)
	GetDecks(ctx context.Context, userID int64, asOf time.Time) ([]domain.Deck, error)
}

// SessionRepository defines review session log operations
type SessionRepository interface {
	LogSession(ctx context.Context, userID int64, log domain.SessionLog) error
	GetSessionDates(ctx context.Context, userID int64) ([]time.Time, error)
	GetDaysWithSessions(ctx context.Context, userID int64, limit, offset int) ([]domain.Day, error)
	GetTotalDaysCount(ctx context.Context, userID int64) (int, error)
	CleanOldSessions(ctx context.Context, days int) error
}
