package domain

import "errors"

var (
	ErrValidation       = errors.New("validation failed")
	ErrCardNotFound     = errors.New("card not found")
	ErrInvalidQuality   = errors.New("invalid quality rating")
	ErrNothingDue       = errors.New("nothing due for review")
	ErrSessionNotActive = errors.New("review session is not active")
	ErrSessionNotDone   = errors.New("review session is not complete")
	ErrStaleRating      = errors.New("rating does not match the presented card")
)
