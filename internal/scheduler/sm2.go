// Package scheduler implements the SM-2 review scheduling used for flashcards.
package scheduler

import (
	"math"
	"time"

	"blocus/internal/domain"
)

// Next computes the schedule that follows a review graded q at now.
// It is pure: identical inputs give identical outputs.
func Next(s domain.Schedule, q domain.Quality, now time.Time) domain.Schedule {
	q = q.Clamp()

	ease := s.EaseFactor
	if ease <= 0 {
		ease = domain.DefaultEaseFactor
	}
	interval := s.Interval
	if interval < 1 {
		interval = domain.DefaultInterval
	}
	repetitions := s.Repetitions
	if repetitions < 0 {
		repetitions = 0
	}

	if q.IsPass() {
		repetitions++
		switch repetitions {
		case 1:
			interval = 1
		case 2:
			interval = 6
		default:
			interval = int(math.Round(float64(interval) * ease))
		}
		if interval < 1 {
			interval = 1
		}
	} else {
		repetitions = 0
		interval = 1
	}

	reviewed := now

	return domain.Schedule{
		EaseFactor:     nextEase(ease, q),
		Interval:       interval,
		Repetitions:    repetitions,
		NextReviewDate: now.AddDate(0, 0, interval),
		LastReviewed:   &reviewed,
	}
}

// nextEase applies the SM-2 ease update with its 1.3 floor
func nextEase(ease float64, q domain.Quality) float64 {
	d := float64(domain.MaxQuality - q)
	ease += 0.1 - d*(0.08+d*0.02)
	return math.Max(domain.MinEaseFactor, ease)
}
