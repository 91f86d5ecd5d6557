// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date rendering used in every response.
// It matches the classic toDateString form, e.g. "Sun Jan 01 2023",
// and never carries time-of-day.
const DateLayout = "Mon Jan 02 2006"

// inputDateLayout is the calendar-date form accepted on input.
const inputDateLayout = "2006-01-02"

// User is a registered account. Usernames are not unique.
type User struct {
	ID       string
	Username string
}

// Exercise is a single exercise entry owned by a user.
// Username is a denormalized copy of the owner's name taken at creation time;
// users are never renamed, so it cannot drift.
type Exercise struct {
	ID          string
	UserID      string
	Username    string
	Description string
	Duration    int
	Date        time.Time
}

// LogFilter restricts an exercise-log query. From and To are inclusive
// calendar-date bounds; a nil bound is open. Limit caps returned entries.
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// Matches reports whether a date falls inside the filter's bounds.
func (f LogFilter) Matches(date time.Time) bool {
	day := Midnight(date)
	if f.From != nil && day.Before(Midnight(*f.From)) {
		return false
	}
	if f.To != nil && day.After(Midnight(*f.To)) {
		return false
	}
	return true
}

// FormatDate renders a date in the response form, e.g. "Sun Jan 01 2023".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(inputDateLayout, strings.TrimSpace(s))
}

// Midnight truncates a timestamp to its calendar date in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
