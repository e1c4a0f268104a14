package domain

import (
	"fmt"
	"strings"
)

// Quality is the canonical recall rating, 0 (blackout) to 4 (perfect).
// Every UI scale maps onto it at the boundary.
type Quality int

const (
	QualityBlackout Quality = 0
	QualityAgain    Quality = 1
	QualityHard     Quality = 2
	QualityGood     Quality = 3
	QualityEasy     Quality = 4

	MaxQuality  = QualityEasy
	PassQuality = QualityHard
)

var qualityNames = [...]string{
	QualityBlackout: "Blackout",
	QualityAgain:    "Again",
	QualityHard:     "Hard",
	QualityGood:     "Good",
	QualityEasy:     "Easy",
}

// IsValid reports whether q lies on the canonical scale
func (q Quality) IsValid() bool {
	return q >= QualityBlackout && q <= MaxQuality
}

// IsPass reports whether the rating counts as a successful recall
func (q Quality) IsPass() bool {
	return q >= PassQuality
}

// Clamp forces q into the canonical range
func (q Quality) Clamp() Quality {
	if q < QualityBlackout {
		return QualityBlackout
	}
	if q > MaxQuality {
		return MaxQuality
	}
	return q
}

func (q Quality) String() string {
	if q.IsValid() {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// Button is the four-button flashcard scale shown after the answer is revealed
type Button int

const (
	ButtonAgain Button = iota
	ButtonHard
	ButtonGood
	ButtonEasy
)

// Quality maps a flashcard button onto the canonical scale
func (b Button) Quality() (Quality, error) {
	switch b {
	case ButtonAgain:
		return QualityAgain, nil
	case ButtonHard:
		return QualityHard, nil
	case ButtonGood:
		return QualityGood, nil
	case ButtonEasy:
		return QualityEasy, nil
	}
	return 0, fmt.Errorf("%w: button %d", ErrInvalidQuality, int(b))
}

// ParseDifficulty maps the named hard/medium/easy scale onto the canonical scale
func ParseDifficulty(label string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "hard":
		return QualityHard, nil
	case "medium":
		return QualityGood, nil
	case "easy":
		return QualityEasy, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, label)
}
