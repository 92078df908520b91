// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"messmate/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for mess data storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// Users

	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail retrieves a user by email address.
	// Returns (nil, nil) if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Messes and memberships

	// CreateMess persists a new mess. The ID and CreatedAt fields are
	// populated if unset.
	CreateMess(ctx context.Context, mess *models.Mess) error
	// GetMess retrieves a mess by ID.
	GetMess(ctx context.Context, messID string) (*models.Mess, error)
	// UpdateMessSettings writes the mutable mess settings (name,
	// currency, breakfast rule).
	UpdateMessSettings(ctx context.Context, mess *models.Mess) error
	// CreateMembership associates a user with a mess and role.
	CreateMembership(ctx context.Context, m *models.Membership) error
	// GetMembershipForUser returns the user's membership, if any.
	// A user belongs to at most one mess in the current design.
	GetMembershipForUser(ctx context.Context, userID string) (*models.Membership, error)

	// Members

	// CreateMember persists a new member row.
	CreateMember(ctx context.Context, member *models.Member) error
	// GetMember retrieves a member by ID.
	GetMember(ctx context.Context, memberID string) (*models.Member, error)
	// ListMembers returns the mess's members ordered by name.
	// When activeOnly is true, deactivated members are skipped.
	ListMembers(ctx context.Context, messID string, activeOnly bool) ([]*models.Member, error)
	// DeactivateMember soft-deletes a member, keeping its history.
	DeactivateMember(ctx context.Context, memberID string) error

	// Meals

	// UpsertMeals writes one day's meal rows in a single transaction,
	// replacing any existing row per (member, date).
	UpsertMeals(ctx context.Context, meals []*models.Meal) error
	// ListMealsByDate returns the mess's meal rows on one date.
	ListMealsByDate(ctx context.Context, messID string, date time.Time) ([]*models.Meal, error)
	// ListMealsInRange returns meal rows with from <= date <= to.
	ListMealsInRange(ctx context.Context, messID string, from, to time.Time) ([]*models.Meal, error)
	// ListMealsByMember returns one member's rows, newest date first.
	ListMealsByMember(ctx context.Context, memberID string) ([]*models.Meal, error)

	// Ledger

	// CreateExpense persists a new expense row.
	CreateExpense(ctx context.Context, e *models.Expense) error
	// ListExpensesInRange returns expenses with from <= date <= to.
	ListExpensesInRange(ctx context.Context, messID string, from, to time.Time) ([]*models.Expense, error)
	// ListRecentExpenses returns up to limit expenses, newest date first.
	ListRecentExpenses(ctx context.Context, messID string, limit int) ([]*models.Expense, error)
	// DeleteExpense removes an expense. Returns ErrNotFound if absent
	// or belonging to another mess.
	DeleteExpense(ctx context.Context, messID, expenseID string) error

	// CreateDeposit persists a new deposit row.
	CreateDeposit(ctx context.Context, d *models.Deposit) error
	// ListDepositsInRange returns deposits with from <= date <= to.
	ListDepositsInRange(ctx context.Context, messID string, from, to time.Time) ([]*models.Deposit, error)
	// ListRecentDeposits returns up to limit deposits, newest date first.
	ListRecentDeposits(ctx context.Context, messID string, limit int) ([]*models.Deposit, error)
	// ListDepositsByMember returns one member's deposits, newest first.
	ListDepositsByMember(ctx context.Context, memberID string) ([]*models.Deposit, error)
	// DeleteDeposit removes a deposit. Returns ErrNotFound if absent
	// or belonging to another mess.
	DeleteDeposit(ctx context.Context, messID, depositID string) error

	// Manager assignments

	// CreateAssignment persists a new manager assignment.
	CreateAssignment(ctx context.Context, a *models.ManagerAssignment) error
	// ListAssignments returns the mess's assignments, newest start first.
	ListAssignments(ctx context.Context, messID string) ([]*models.ManagerAssignment, error)
	// FindAssignmentCovering returns the most recently started
	// assignment whose window contains date for the given user, or
	// (nil, nil) when the user holds none.
	FindAssignmentCovering(ctx context.Context, messID, userID string, date time.Time) (*models.ManagerAssignment, error)

	// Close releases any resources held by the store.
	Close() error
}
