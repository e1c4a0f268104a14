package testutil

import (
	"time"

	"blocus/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestCard creates a due card with default scheduling state
func NewTestCard(id string, userID int64, question, answer string) domain.Card {
	now := time.Now()
	return domain.Card{
		ID:       id,
		UserID:   userID,
		Question: question,
		Answer:   answer,
		Schedule: domain.Schedule{
			EaseFactor:     domain.DefaultEaseFactor,
			Interval:       domain.DefaultInterval,
			NextReviewDate: now.Add(-time.Hour),
		},
		CreatedAt: now.Add(-24 * time.Hour),
	}
}

// NewTestDay creates a test day
func NewTestDay(date time.Time, cardsReviewed int) domain.Day {
	return domain.Day{
		Date:          date,
		CardsReviewed: cardsReviewed,
	}
}
