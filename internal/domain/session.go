package domain

import "time"

// SessionState is a review session's position in its lifecycle
type SessionState string

const (
	SessionIdle     SessionState = "idle"
	SessionActive   SessionState = "active"
	SessionComplete SessionState = "complete"
)

// Session is a single pass over a user's due cards.
// It is owned by the caller and mutated only through the review service.
type Session struct {
	UserID    int64
	State     SessionState
	Queue     []Card
	Position  int
	Revealed  bool
	Reviewed  int
	StartedAt time.Time
}

// Current returns the presented card, or nil once the queue is exhausted
func (s *Session) Current() *Card {
	if s == nil || s.Position < 0 || s.Position >= len(s.Queue) {
		return nil
	}
	return &s.Queue[s.Position]
}

// Remaining returns how many cards are left including the presented one
func (s *Session) Remaining() int {
	if s == nil || s.Position >= len(s.Queue) {
		return 0
	}
	return len(s.Queue) - s.Position
}

// SessionLog is the record written once per completed session
type SessionLog struct {
	Date          time.Time
	CardsReviewed int
}
