package domain

import "time"

// Day represents a calendar day with the number of cards reviewed
type Day struct {
	Date          time.Time
	CardsReviewed int
}

// DateString returns date in YYYYMMDD format
func (d Day) DateString() string {
	return d.Date.Format("20060102")
}

// DisplayString returns user-friendly date string
func (d Day) DisplayString() string {
	return displayDate(d.Date, time.Now())
}

func displayDate(date, now time.Time) string {
	if SameDay(date, now) {
		return "Aujourd'hui"
	}

	if SameDay(date, now.AddDate(0, 0, -1)) {
		return "Hier"
	}

	months := []string{
		"", "janv", "févr", "mars", "avr", "mai", "juin",
		"juil", "août", "sept", "oct", "nov", "déc",
	}

	return date.Format("2 ") + months[date.Month()] + date.Format(" 2006")
}

// SameDay reports whether a and b fall on the same calendar date
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
