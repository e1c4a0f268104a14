package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"blocus/internal/domain"
	"blocus/internal/repository"
	"blocus/internal/scheduler"

	"go.uber.org/zap"
)

// ReviewService runs review sessions over a user's due cards.
// Sessions are owned by the caller; the service keeps no per-user state.
type ReviewService struct {
	cardRepo    repository.CardRepository
	sessionRepo repository.SessionRepository
	logger      *zap.Logger
	shuffle     func(n int, swap func(i, j int))
}

// NewReviewService creates a new review service
func NewReviewService(
	cardRepo repository.CardRepository,
	sessionRepo repository.SessionRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		cardRepo:    cardRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
		shuffle:     rand.Shuffle,
	}
}

// StartSession loads the cards due at now in random order.
// It returns domain.ErrNothingDue when the queue would be empty.
func (s *ReviewService) StartSession(ctx context.Context, userID int64, now time.Time) (*domain.Session, error) {
	cards, err := s.cardRepo.FindDueCards(ctx, userID, now)
	if err != nil {
		s.logger.Error("Failed to load due cards", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to load due cards: %w", err)
	}

	if len(cards) == 0 {
		return nil, domain.ErrNothingDue
	}

	s.shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	s.logger.Info("Review session started",
		zap.Int64("user_id", userID),
		zap.Int("due_cards", len(cards)),
	)

	return &domain.Session{
		UserID:    userID,
		State:     domain.SessionActive,
		Queue:     cards,
		StartedAt: now,
	}, nil
}

// Reveal shows the answer of the presented card
func (s *ReviewService) Reveal(session *domain.Session) error {
	if session == nil || session.State != domain.SessionActive {
		return domain.ErrSessionNotActive
	}
	session.Revealed = true
	return nil
}

// Rate grades the presented card, persists its new schedule and advances the queue.
// The session does not advance when persistence fails, so the same rating can be resubmitted.
func (s *ReviewService) Rate(
	ctx context.Context,
	session *domain.Session,
	cardID string,
	q domain.Quality,
	now time.Time,
) (domain.Schedule, error) {
	if session == nil || session.State != domain.SessionActive {
		return domain.Schedule{}, domain.ErrSessionNotActive
	}
	if !q.IsValid() {
		return domain.Schedule{}, fmt.Errorf("%w: %d", domain.ErrInvalidQuality, int(q))
	}

	card := session.Current()
	if card == nil {
		return domain.Schedule{}, domain.ErrSessionNotActive
	}
	if card.ID != cardID {
		return domain.Schedule{}, domain.ErrStaleRating
	}

	next := scheduler.Next(card.Schedule, q, now)

	if err := s.cardRepo.UpdateCard(ctx, session.UserID, card.ID, next); err != nil {
		s.logger.Error("Failed to save review",
			zap.Int64("user_id", session.UserID),
			zap.String("card_id", card.ID),
			zap.Error(err),
		)
		return domain.Schedule{}, fmt.Errorf("failed to save review: %w", err)
	}

	card.Schedule = next
	session.Reviewed++
	session.Position++
	session.Revealed = false

	if session.Position >= len(session.Queue) {
		session.State = domain.SessionComplete
	}

	s.logger.Debug("Card reviewed",
		zap.Int64("user_id", session.UserID),
		zap.String("card_id", card.ID),
		zap.Stringer("quality", q),
		zap.Int("interval", next.Interval),
		zap.Float64("ease_factor", next.EaseFactor),
	)

	return next, nil
}

// Finish logs a completed session and returns it to idle.
// A failed write leaves the session complete so the user can retry.
func (s *ReviewService) Finish(ctx context.Context, session *domain.Session, now time.Time) error {
	if session == nil || session.State != domain.SessionComplete {
		return domain.ErrSessionNotDone
	}

	log := domain.SessionLog{Date: now, CardsReviewed: session.Reviewed}
	if err := s.sessionRepo.LogSession(ctx, session.UserID, log); err != nil {
		s.logger.Error("Failed to log session",
			zap.Int64("user_id", session.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to log session: %w", err)
	}

	s.logger.Info("Review session finished",
		zap.Int64("user_id", session.UserID),
		zap.Int("cards_reviewed", session.Reviewed),
		zap.Duration("duration", now.Sub(session.StartedAt)),
	)

	session.State = domain.SessionIdle
	session.Queue = nil
	session.Position = 0
	session.Revealed = false
	return nil
}

// Abort drops an unfinished session without writing a log.
// Cards graded so far keep their new schedule.
func (s *ReviewService) Abort(session *domain.Session) {
	if session == nil || session.State == domain.SessionIdle {
		return
	}

	s.logger.Info("Review session aborted",
		zap.Int64("user_id", session.UserID),
		zap.Int("cards_reviewed", session.Reviewed),
		zap.Int("cards_left", session.Remaining()),
	)

	session.State = domain.SessionIdle
	session.Queue = nil
	session.Position = 0
	session.Revealed = false
}
