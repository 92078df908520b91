package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"messmate/internal/calculator"
	"messmate/internal/models"
	"messmate/internal/storage"
)

// MessService serves the dashboard and mess settings.
type MessService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewMessService creates a new MessService with the given storage backend.
func NewMessService(store storage.Store, logger *slog.Logger) *MessService {
	return &MessService{store: store, logger: logger}
}

// messForUser resolves the acting user's mess and membership.
func messForUser(ctx context.Context, store storage.Store, userID string) (*models.Mess, *models.Membership, error) {
	membership, err := store.GetMembershipForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if membership == nil {
		return nil, nil, ErrNoMess
	}

	mess, err := store.GetMess(ctx, membership.MessID)
	if err != nil {
		return nil, nil, err
	}

	return mess, membership, nil
}

// requireSuperAdmin resolves the mess and rejects non-super-admins.
func requireSuperAdmin(ctx context.Context, store storage.Store, userID string) (*models.Mess, error) {
	mess, membership, err := messForUser(ctx, store, userID)
	if err != nil {
		return nil, err
	}
	if membership.Role != models.RoleSuperAdmin {
		return nil, ErrPermissionDenied
	}
	return mess, nil
}

// monthRange returns the first and last day of the given month.
func monthRange(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 || year < 1 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad year/month %d-%d", ErrInvalidInput, year, month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}

// Dashboard computes the billing dashboard for the user's mess and the
// given month. Any mess member may view it.
func (s *MessService) Dashboard(ctx context.Context, userID string, year, month int) (*calculator.Dashboard, *models.Mess, error) {
	mess, _, err := messForUser(ctx, s.store, userID)
	if err != nil {
		return nil, nil, err
	}

	from, to, err := monthRange(year, month)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.store.ListMembers(ctx, mess.ID, true)
	if err != nil {
		return nil, nil, err
	}
	meals, err := s.store.ListMealsInRange(ctx, mess.ID, from, to)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.store.ListExpensesInRange(ctx, mess.ID, from, to)
	if err != nil {
		return nil, nil, err
	}
	deposits, err := s.store.ListDepositsInRange(ctx, mess.ID, from, to)
	if err != nil {
		return nil, nil, err
	}
	assignments, err := s.store.ListAssignments(ctx, mess.ID)
	if err != nil {
		return nil, nil, err
	}

	activeIDs := make(map[string]bool, len(members))
	calcMembers := make([]calculator.MemberInfo, len(members))
	for i, m := range members {
		activeIDs[m.ID] = true
		calcMembers[i] = calculator.MemberInfo{ID: m.ID, Name: m.Name}
	}

	// Rows belonging to deactivated members are excluded, matching the
	// active-roster view of the dashboard.
	var calcMeals []calculator.MealEntry
	for _, m := range meals {
		if !activeIDs[m.MemberID] {
			continue
		}
		calcMeals = append(calcMeals, calculator.MealEntry{
			MemberID:  m.MemberID,
			Breakfast: m.Breakfast,
			Lunch:     m.Lunch,
			Dinner:    m.Dinner,
			Extra:     m.Extra,
		})
	}

	calcExpenses := make([]calculator.ExpenseEntry, len(expenses))
	for i, e := range expenses {
		calcExpenses[i] = calculator.ExpenseEntry{Amount: e.Amount}
	}

	calcDeposits := make([]calculator.DepositEntry, len(deposits))
	for i, d := range deposits {
		calcDeposits[i] = calculator.DepositEntry{MemberID: d.MemberID, Amount: d.Amount}
	}

	calcAssignments := make([]calculator.AssignmentEntry, 0, len(assignments))
	for _, a := range assignments {
		calcAssignments = append(calcAssignments, calculator.AssignmentEntry{
			ManagerID: a.ManagerUserID,
			Name:      s.managerName(ctx, a),
			StartDate: models.DateOnly(a.StartDate),
			EndDate:   models.DateOnly(a.EndDate),
		})
	}

	settings := calculator.Settings{
		IncludeBreakfast: mess.IncludeBreakfast,
		BreakfastWeight:  mess.BreakfastWeight,
	}
	dashboard := calculator.ComputeDashboard(settings, calcMembers, calcMeals, calcExpenses, calcDeposits, calcAssignments)

	s.logger.Debug("dashboard computed",
		"mess_id", mess.ID,
		"year", year,
		"month", month,
		"members", len(members),
		"meal_rows", len(calcMeals),
	)
	return &dashboard, mess, nil
}

// managerName prefers the linked member's name, falling back to the
// user's display name, then the bare user ID.
func (s *MessService) managerName(ctx context.Context, a *models.ManagerAssignment) string {
	if a.ManagerMemberID != "" {
		if member, err := s.store.GetMember(ctx, a.ManagerMemberID); err == nil {
			return member.Name
		}
	}
	if user, err := s.store.GetUserByID(ctx, a.ManagerUserID); err == nil && user != nil {
		return user.DisplayName
	}
	return a.ManagerUserID
}

// SettingsUpdate carries the editable mess settings.
type SettingsUpdate struct {
	Name             string
	Currency         string
	IncludeBreakfast bool
	BreakfastWeight  float64
}

// GetSettings returns the mess and the acting user's role.
func (s *MessService) GetSettings(ctx context.Context, userID string) (*models.Mess, models.Role, error) {
	mess, membership, err := messForUser(ctx, s.store, userID)
	if err != nil {
		return nil, "", err
	}
	return mess, membership.Role, nil
}

// UpdateSettings writes the breakfast rule, name and currency.
// Super admin only.
func (s *MessService) UpdateSettings(ctx context.Context, userID string, update SettingsUpdate) (*models.Mess, error) {
	mess, err := requireSuperAdmin(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	if update.BreakfastWeight < 0 || update.BreakfastWeight > 2 {
		return nil, fmt.Errorf("%w: breakfast weight must be between 0 and 2", ErrInvalidInput)
	}
	if update.Name != "" {
		mess.Name = update.Name
	}
	if update.Currency != "" {
		mess.Currency = update.Currency
	}
	mess.IncludeBreakfast = update.IncludeBreakfast
	mess.BreakfastWeight = update.BreakfastWeight

	if err := s.store.UpdateMessSettings(ctx, mess); err != nil {
		return nil, err
	}

	s.logger.Info("settings updated",
		"mess_id", mess.ID,
		"include_breakfast", mess.IncludeBreakfast,
		"breakfast_weight", mess.BreakfastWeight,
	)
	return mess, nil
}
