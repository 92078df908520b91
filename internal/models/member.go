package models

// MealPattern describes which meals a member takes by default on days
// without an explicit meal record. Used to pre-fill the day sheet.
type MealPattern string

const (
	PatternNone            MealPattern = "NONE"
	PatternBreakfast       MealPattern = "B"
	PatternLunch           MealPattern = "L"
	PatternDinner          MealPattern = "D"
	PatternBreakfastLunch  MealPattern = "BL"
	PatternLunchDinner     MealPattern = "LD"
	PatternBreakfastDinner MealPattern = "BD"
	PatternAllMeals        MealPattern = "BLD"
)

// Valid reports whether p is one of the known patterns.
func (p MealPattern) Valid() bool {
	switch p {
	case PatternNone, PatternBreakfast, PatternLunch, PatternDinner,
		PatternBreakfastLunch, PatternLunchDinner, PatternBreakfastDinner,
		PatternAllMeals:
		return true
	}
	return false
}

// Breakfast reports whether the pattern includes breakfast.
func (p MealPattern) Breakfast() bool { return contains(p, 'B') }

// Lunch reports whether the pattern includes lunch.
func (p MealPattern) Lunch() bool { return contains(p, 'L') }

// Dinner reports whether the pattern includes dinner.
func (p MealPattern) Dinner() bool { return contains(p, 'D') }

func contains(p MealPattern, c byte) bool {
	if p == PatternNone {
		return false
	}
	for i := 0; i < len(p); i++ {
		if p[i] == c {
			return true
		}
	}
	return false
}

// Member represents a boarder within a mess. Meals and deposits are
// recorded against members, not users; a member may exist without any
// linked login account (e.g., a boarder who never signs in).
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// MessID is the mess this member belongs to.
	MessID string

	// UserID is the optional linked login account ("" if none).
	UserID string

	// Name is the member's display name, unique within the mess.
	Name string

	// Phone is an optional contact number.
	Phone string

	// Active is false once the member has left the mess. Inactive
	// members keep their history but are excluded from new meal sheets
	// and dashboard rows.
	Active bool

	// DefaultPattern pre-fills the day sheet on dates without a record.
	DefaultPattern MealPattern

	// CreatedAt is the Unix timestamp when the member was added.
	CreatedAt int64
}
