package models

import "time"

// ExpenseCategory classifies what a shared-fund expense was spent on.
type ExpenseCategory string

const (
	CategoryRice  ExpenseCategory = "rice"
	CategoryMeat  ExpenseCategory = "meat"
	CategoryVeg   ExpenseCategory = "veg"
	CategoryFish  ExpenseCategory = "fish"
	CategoryOther ExpenseCategory = "other"
)

// Valid reports whether c is a known category.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryRice, CategoryMeat, CategoryVeg, CategoryFish, CategoryOther:
		return true
	}
	return false
}

// Expense represents money spent from the mess's shared fund, typically
// a grocery (bazar) purchase.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// MessID is the mess the money was spent for.
	MessID string

	// Date is the calendar date of the purchase (UTC midnight).
	Date time.Time

	// Amount is the money spent.
	Amount float64

	// Category classifies the purchase.
	Category ExpenseCategory

	// PaidByMemberID optionally records which member fronted the money
	// ("" if paid straight from the fund).
	PaidByMemberID string

	// Note is an optional free-text description.
	Note string

	// CreatedAt is the Unix timestamp when the row was recorded.
	CreatedAt int64
}

// Deposit represents money a member paid into the mess's shared fund.
type Deposit struct {
	// ID is the unique identifier for the deposit (UUID format).
	ID string

	// MessID is the mess the money went to.
	MessID string

	// MemberID is the member who paid.
	MemberID string

	// Date is the calendar date of the payment (UTC midnight).
	Date time.Time

	// Amount is the money paid in.
	Amount float64

	// Method is an optional payment method label (cash, bkash, ...).
	Method string

	// Note is an optional free-text description.
	Note string

	// CreatedAt is the Unix timestamp when the row was recorded.
	CreatedAt int64
}
