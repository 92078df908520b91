package models

import "time"

// Meal records what one member ate on one date. There is at most one
// row per (mess, member, date); saving the day sheet upserts rows.
type Meal struct {
	// ID is the unique identifier for the meal row (UUID format).
	ID string

	// MessID is the mess this row belongs to.
	MessID string

	// MemberID is the member who ate.
	MemberID string

	// Date is the calendar date (UTC midnight; only the date part is
	// meaningful).
	Date time.Time

	// Breakfast, Lunch and Dinner flag which regular meals were taken.
	Breakfast bool
	Lunch     bool
	Dinner    bool

	// Extra counts additional meal units beyond the regular three, such
	// as a guest meal or a double portion. May be fractional.
	Extra float64
}

// DateOnly truncates t to UTC midnight so it can be used as a calendar
// date in meal, expense and assignment rows.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
