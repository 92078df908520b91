package models

// Role is a user's role within a mess.
type Role string

const (
	// RoleSuperAdmin can edit everything in the mess: members, money,
	// settings, assignments, and any day's meal sheet.
	RoleSuperAdmin Role = "super_admin"

	// RoleManager can edit meal sheets, but only on dates covered by an
	// active ManagerAssignment.
	RoleManager Role = "manager"

	// RoleMember has read-only access to their own data.
	RoleMember Role = "member"
)

// Mess represents a shared household that tracks meals and expenses.
type Mess struct {
	// ID is the unique identifier for the mess (UUID format).
	ID string

	// Name is the display name of the mess (e.g., "Green House Mess").
	Name string

	// OwnerID is the user who created the mess.
	OwnerID string

	// Currency is the ISO-ish currency code used for display.
	Currency string

	// IncludeBreakfast controls whether breakfasts count toward meal
	// totals at all.
	IncludeBreakfast bool

	// BreakfastWeight is the meal-unit value of one breakfast when
	// IncludeBreakfast is on. A lunch or dinner is always 1 unit.
	BreakfastWeight float64

	// CreatedAt is the Unix timestamp when the mess was created.
	CreatedAt int64
}

// Membership associates a user with a mess and a role.
// A user holds at most one membership per mess.
type Membership struct {
	MessID string
	UserID string
	Role   Role
}

// DefaultCurrency is applied to newly created messes.
const DefaultCurrency = "BDT"

// DefaultBreakfastWeight is the meal-unit value of a breakfast unless the
// mess configures otherwise.
const DefaultBreakfastWeight = 0.5
