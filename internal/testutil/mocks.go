package testutil

import (
	"context"
	"time"

	"blocus/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockCardRepository is a mock for CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) CreateCard(ctx context.Context, card domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) FindDueCards(ctx context.Context, userID int64, asOf time.Time) ([]domain.Card, error) {
	args := m.Called(ctx, userID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

func (m *MockCardRepository) UpdateCard(ctx context.Context, userID int64, cardID string, schedule domain.Schedule) error {
	args := m.Called(ctx, userID, cardID, schedule)
	return args.Error(0)
}

func (m *MockCardRepository) DeleteCard(ctx context.Context, userID int64, cardID string) error {
	args := m.Called(ctx, userID, cardID)
	return args.Error(0)
}

func (m *MockCardRepository) ListCards(ctx context.Context, userID int64, limit, offset int) ([]domain.Card, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Card), args.Error(1)
}

func (m *MockCardRepository) CountCards(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) GetDecks(ctx context.Context, userID int64, asOf time.Time) ([]domain.Deck, error) {
	args := m.Called(ctx, userID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deck), args.Error(1)
}

// MockSessionRepository is a mock for SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) LogSession(ctx context.Context, userID int64, log domain.SessionLog) error {
	args := m.Called(ctx, userID, log)
	return args.Error(0)
}

func (m *MockSessionRepository) GetSessionDates(ctx context.Context, userID int64) ([]time.Time, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockSessionRepository) GetDaysWithSessions(ctx context.Context, userID int64, limit, offset int) ([]domain.Day, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Day), args.Error(1)
}

func (m *MockSessionRepository) GetTotalDaysCount(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockSessionRepository) CleanOldSessions(ctx context.Context, days int) error {
	args := m.Called(ctx, days)
	return args.Error(0)
}
