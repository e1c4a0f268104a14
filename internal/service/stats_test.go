package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"blocus/internal/domain"
	"blocus/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsService_CleanupOldData(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{
			name:          "successful cleanup",
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockSessionRepository)
			mockRepo.On("CleanOldSessions", mock.Anything, 365).Return(tt.mockError)

			service := NewStatsService(mockRepo, time.UTC, 365, testutil.NewTestLogger())

			err := service.CleanupOldData(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCountStreak(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, loc)
	day := func(offset int, hour int) time.Time {
		return time.Date(2024, 3, 10+offset, hour, 0, 0, 0, loc)
	}

	tests := []struct {
		name     string
		dates    []time.Time
		expected int
	}{
		{
			name:     "no sessions",
			dates:    nil,
			expected: 0,
		},
		{
			name:     "only today",
			dates:    []time.Time{day(0, 9)},
			expected: 1,
		},
		{
			name:     "today and two previous days",
			dates:    []time.Time{day(0, 9), day(-1, 22), day(-2, 7)},
			expected: 3,
		},
		{
			name:     "several sessions on one day count once",
			dates:    []time.Time{day(0, 9), day(0, 12), day(0, 18), day(-1, 8)},
			expected: 2,
		},
		{
			name:     "no session yet today keeps yesterday's streak",
			dates:    []time.Time{day(-1, 9), day(-2, 9)},
			expected: 2,
		},
		{
			name:     "gap stops the count",
			dates:    []time.Time{day(0, 9), day(-1, 9), day(-3, 9), day(-4, 9)},
			expected: 2,
		},
		{
			name:     "last session two days ago",
			dates:    []time.Time{day(-2, 9), day(-3, 9)},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, countStreak(tt.dates, now, loc))
		})
	}
}

func TestCountStreak_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2024, 3, 10, 0, 30, 0, 0, loc)

	// 22:30 UTC on the 9th is already the 10th in UTC+2
	dates := []time.Time{time.Date(2024, 3, 9, 22, 30, 0, 0, time.UTC)}

	assert.Equal(t, 1, countStreak(dates, now, loc))
	assert.Equal(t, 1, countStreak(dates, now, time.UTC))
}

func TestStatsService_Streak(t *testing.T) {
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	mockRepo := new(testutil.MockSessionRepository)
	mockRepo.On("GetSessionDates", mock.Anything, int64(123)).
		Return([]time.Time{now.Add(-time.Hour), now.AddDate(0, 0, -1)}, nil)
	mockRepo.On("GetSessionDates", mock.Anything, int64(456)).
		Return(nil, fmt.Errorf("db error"))

	service := NewStatsService(mockRepo, time.UTC, 365, testutil.NewTestLogger())

	streak, err := service.Streak(context.Background(), 123, now)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)

	_, err = service.Streak(context.Background(), 456, now)
	assert.Error(t, err)

	mockRepo.AssertExpectations(t)
}

func TestStatsService_GetHistory(t *testing.T) {
	tests := []struct {
		name               string
		page               int
		mockDays           []domain.Day
		mockTotalDays      int
		mockError          error
		mockTotalDaysError error
		expectedPages      int
		expectedDaysCount  int
		expectedError      bool
	}{
		{
			name:              "first page with 7 days",
			page:              1,
			mockDays:          []domain.Day{testutil.NewTestDay(time.Now(), 5), testutil.NewTestDay(time.Now().AddDate(0, 0, -1), 3)},
			mockTotalDays:     14,
			expectedPages:     2,
			expectedDaysCount: 2,
		},
		{
			name:              "invalid page number (negative)",
			page:              -1,
			mockDays:          []domain.Day{},
			mockTotalDays:     7,
			expectedPages:     1,
			expectedDaysCount: 0,
		},
		{
			name:          "database error on days",
			page:          1,
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
		{
			name:              "zero total days sets totalPages to 1",
			page:              1,
			mockDays:          []domain.Day{},
			mockTotalDays:     0,
			expectedPages:     1,
			expectedDaysCount: 0,
		},
		{
			name:               "database error on total count",
			page:               1,
			mockDays:           []domain.Day{testutil.NewTestDay(time.Now(), 5)},
			mockTotalDaysError: fmt.Errorf("db error"),
			expectedError:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockSessionRepository)

			page := tt.page
			if page < 1 {
				page = 1
			}
			offset := (page - 1) * 7

			mockRepo.On("GetDaysWithSessions", mock.Anything, int64(123), 7, offset).Return(tt.mockDays, tt.mockError)

			if tt.mockError == nil {
				mockRepo.On("GetTotalDaysCount", mock.Anything, int64(123)).Return(tt.mockTotalDays, tt.mockTotalDaysError)
			}

			service := NewStatsService(mockRepo, time.UTC, 365, testutil.NewTestLogger())

			days, totalPages, err := service.GetHistory(context.Background(), 123, tt.page)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedPages, totalPages)
				assert.Len(t, days, tt.expectedDaysCount)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
