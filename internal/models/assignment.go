package models

import "time"

// AssignmentType says how an assignment's period was chosen.
type AssignmentType string

const (
	AssignmentWeek   AssignmentType = "week"
	AssignmentDays   AssignmentType = "days"
	AssignmentCustom AssignmentType = "custom"
)

// ManagerAssignment grants a user the right to edit the mess's meal
// sheet for every date in [StartDate, EndDate], both ends inclusive.
type ManagerAssignment struct {
	// ID is the unique identifier for the assignment (UUID format).
	ID string

	// MessID is the mess the assignment applies to.
	MessID string

	// ManagerUserID is the user being granted edit rights.
	ManagerUserID string

	// ManagerMemberID optionally links the manager's member row, used
	// for display names in manager statistics ("" if not linked).
	ManagerMemberID string

	// Type records how the period was chosen (week, days, custom).
	Type AssignmentType

	// PeriodLabel is the raw period choice the admin picked
	// (e.g., "1week", "10days", "custom").
	PeriodLabel string

	// StartDate and EndDate bound the editable window, inclusive.
	StartDate time.Time
	EndDate   time.Time

	// CreatedByUserID is the super admin who created the assignment.
	CreatedByUserID string

	// CreatedAt is the Unix timestamp when the assignment was created.
	CreatedAt int64
}

// Covers reports whether the assignment's window includes the date d.
func (a *ManagerAssignment) Covers(d time.Time) bool {
	d = DateOnly(d)
	return !d.Before(DateOnly(a.StartDate)) && !d.After(DateOnly(a.EndDate))
}

// TotalDays is the length of the window in days, both ends counted.
func (a *ManagerAssignment) TotalDays() int {
	return int(DateOnly(a.EndDate).Sub(DateOnly(a.StartDate)).Hours()/24) + 1
}
