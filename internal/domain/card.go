package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default scheduling state of a freshly created card
const (
	DefaultEaseFactor = 2.5
	DefaultInterval   = 1
	MinEaseFactor     = 1.3
)

// Schedule holds the memory-strength state of a card
type Schedule struct {
	EaseFactor     float64
	Interval       int // days
	Repetitions    int
	NextReviewDate time.Time
	LastReviewed   *time.Time
}

// Card represents a question-answer flashcard owned by a user
type Card struct {
	ID        string
	UserID    int64
	Question  string
	Answer    string
	Category  string
	Schedule  Schedule
	CreatedAt time.Time
}

// NewCard creates a card with fully initialized scheduling fields.
// The card is due immediately.
func NewCard(userID int64, question, answer, category string, now time.Time) Card {
	return Card{
		ID:       uuid.NewString(),
		UserID:   userID,
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
		Category: strings.TrimSpace(category),
		Schedule: Schedule{
			EaseFactor:     DefaultEaseFactor,
			Interval:       DefaultInterval,
			Repetitions:    0,
			NextReviewDate: now,
		},
		CreatedAt: now,
	}
}

// IsDue reports whether the card's review date has arrived
func (c Card) IsDue(now time.Time) bool {
	return !now.Before(c.Schedule.NextReviewDate)
}

// Deck summarizes the cards of one category
type Deck struct {
	Category string
	Total    int
	Due      int
}

// DisplayName returns the category or a placeholder for uncategorized cards
func (d Deck) DisplayName() string {
	if d.Category == "" {
		return "Sans catégorie"
	}
	return d.Category
}
