package service

import (
	"context"
	"time"

	"blocus/internal/domain"
	"blocus/internal/repository"

	"go.uber.org/zap"
)

const historyPageSize = 7

// StatsService handles review history, streaks and cleanup
type StatsService struct {
	sessionRepo   repository.SessionRepository
	location      *time.Location
	retentionDays int
	logger        *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(
	sessionRepo repository.SessionRepository,
	location *time.Location,
	retentionDays int,
	logger *zap.Logger,
) *StatsService {
	if location == nil {
		location = time.UTC
	}
	return &StatsService{
		sessionRepo:   sessionRepo,
		location:      location,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// CleanupOldData removes session logs older than the retention period
func (s *StatsService) CleanupOldData(ctx context.Context) error {
	s.logger.Info("Starting cleanup of old sessions", zap.Int("retention_days", s.retentionDays))

	err := s.sessionRepo.CleanOldSessions(ctx, s.retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup old sessions", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}

// Streak returns the number of consecutive days with at least one review session
func (s *StatsService) Streak(ctx context.Context, userID int64, now time.Time) (int, error) {
	dates, err := s.sessionRepo.GetSessionDates(ctx, userID)
	if err != nil {
		return 0, err
	}
	return countStreak(dates, now, s.location), nil
}

// GetHistory returns paginated list of days with reviewed card counts
func (s *StatsService) GetHistory(ctx context.Context, userID int64, page int) ([]domain.Day, int, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * historyPageSize
	days, err := s.sessionRepo.GetDaysWithSessions(ctx, userID, historyPageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	totalDays, err := s.sessionRepo.GetTotalDaysCount(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return days, totalPages(totalDays, historyPageSize), nil
}

// countStreak walks back day by day from today. A missing session today
// does not break the streak until the day is over.
func countStreak(dates []time.Time, now time.Time, loc *time.Location) int {
	reviewed := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		reviewed[d.In(loc).Format("20060102")] = struct{}{}
	}

	local := now.In(loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	if _, ok := reviewed[day.Format("20060102")]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := reviewed[day.Format("20060102")]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}
