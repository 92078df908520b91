package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"messmate/internal/models"
	"messmate/internal/storage"
)

// recentLedgerLimit caps how many rows feed the recent-days tables.
const recentLedgerLimit = 200

// LedgerService records and reports shared-fund money movements.
type LedgerService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, logger *slog.Logger) *LedgerService {
	return &LedgerService{store: store, logger: logger}
}

// ExpenseInput is a request to record an expense.
type ExpenseInput struct {
	Date           time.Time
	Amount         float64
	Category       models.ExpenseCategory
	PaidByMemberID string
	Note           string
}

// AddExpense records an expense against the mess. Super admin only.
func (s *LedgerService) AddExpense(ctx context.Context, userID string, in ExpenseInput) (*models.Expense, error) {
	mess, err := requireSuperAdmin(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if in.Category != "" && !in.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}
	if in.PaidByMemberID != "" {
		if err := s.checkMember(ctx, mess.ID, in.PaidByMemberID); err != nil {
			return nil, err
		}
	}

	expense := &models.Expense{
		MessID:         mess.ID,
		Date:           models.DateOnly(in.Date),
		Amount:         in.Amount,
		Category:       in.Category,
		PaidByMemberID: in.PaidByMemberID,
		Note:           in.Note,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.Info("expense recorded",
		"mess_id", mess.ID,
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"category", expense.Category,
	)
	return expense, nil
}

// DeleteExpense removes a mistyped expense. Super admin only.
func (s *LedgerService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	mess, err := requireSuperAdmin(ctx, s.store, userID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteExpense(ctx, mess.ID, expenseID); err != nil {
		return err
	}
	s.logger.Info("expense deleted", "mess_id", mess.ID, "expense_id", expenseID)
	return nil
}

// DepositInput is a request to record a deposit.
type DepositInput struct {
	MemberID string
	Date     time.Time
	Amount   float64
	Method   string
	Note     string
}

// AddDeposit records a member's payment into the fund. Super admin only.
func (s *LedgerService) AddDeposit(ctx context.Context, userID string, in DepositInput) (*models.Deposit, error) {
	mess, err := requireSuperAdmin(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if err := s.checkMember(ctx, mess.ID, in.MemberID); err != nil {
		return nil, err
	}

	deposit := &models.Deposit{
		MessID:   mess.ID,
		MemberID: in.MemberID,
		Date:     models.DateOnly(in.Date),
		Amount:   in.Amount,
		Method:   in.Method,
		Note:     in.Note,
	}
	if err := s.store.CreateDeposit(ctx, deposit); err != nil {
		return nil, err
	}

	s.logger.Info("deposit recorded",
		"mess_id", mess.ID,
		"deposit_id", deposit.ID,
		"member_id", deposit.MemberID,
		"amount", deposit.Amount,
	)
	return deposit, nil
}

// DeleteDeposit removes a mistyped deposit. Super admin only.
func (s *LedgerService) DeleteDeposit(ctx context.Context, userID, depositID string) error {
	mess, err := requireSuperAdmin(ctx, s.store, userID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteDeposit(ctx, mess.ID, depositID); err != nil {
		return err
	}
	s.logger.Info("deposit deleted", "mess_id", mess.ID, "deposit_id", depositID)
	return nil
}

// checkMember verifies the member exists, is active and belongs to the mess.
func (s *LedgerService) checkMember(ctx context.Context, messID, memberID string) error {
	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return fmt.Errorf("%w: unknown member %s", ErrInvalidInput, memberID)
	}
	if member.MessID != messID || !member.Active {
		return fmt.Errorf("%w: unknown or inactive member %s", ErrInvalidInput, memberID)
	}
	return nil
}

// ExpenseDay is one date's expense total for the recent view.
type ExpenseDay struct {
	Date  time.Time
	Total float64
}

// RecentExpenseDays groups recent expenses by date, newest first.
func (s *LedgerService) RecentExpenseDays(ctx context.Context, userID string) ([]ExpenseDay, []*models.Expense, error) {
	mess, _, err := messForUser(ctx, s.store, userID)
	if err != nil {
		return nil, nil, err
	}

	expenses, err := s.store.ListRecentExpenses(ctx, mess.ID, recentLedgerLimit)
	if err != nil {
		return nil, nil, err
	}

	totals := make(map[time.Time]float64)
	for _, e := range expenses {
		totals[models.DateOnly(e.Date)] += e.Amount
	}

	days := make([]ExpenseDay, 0, len(totals))
	for d, total := range totals {
		days = append(days, ExpenseDay{Date: d, Total: total})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.After(days[j].Date) })

	return days, expenses, nil
}

// DepositDay is one date's deposit total plus who paid.
type DepositDay struct {
	Date    time.Time
	Total   float64
	Members string // comma-joined depositor names
}

// RecentDepositDays groups recent deposits by date with depositor
// names, newest first.
func (s *LedgerService) RecentDepositDays(ctx context.Context, userID string) ([]DepositDay, []*models.Deposit, error) {
	mess, _, err := messForUser(ctx, s.store, userID)
	if err != nil {
		return nil, nil, err
	}

	deposits, err := s.store.ListRecentDeposits(ctx, mess.ID, recentLedgerLimit)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.store.ListMembers(ctx, mess.ID, false)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}

	type acc struct {
		total float64
		who   map[string]bool
	}
	byDate := make(map[time.Time]*acc)
	for _, dep := range deposits {
		d := models.DateOnly(dep.Date)
		a, ok := byDate[d]
		if !ok {
			a = &acc{who: make(map[string]bool)}
			byDate[d] = a
		}
		a.total += dep.Amount
		if name, ok := names[dep.MemberID]; ok {
			a.who[name] = true
		}
	}

	days := make([]DepositDay, 0, len(byDate))
	for d, a := range byDate {
		who := make([]string, 0, len(a.who))
		for name := range a.who {
			who = append(who, name)
		}
		sort.Strings(who)
		days = append(days, DepositDay{Date: d, Total: a.total, Members: strings.Join(who, ", ")})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.After(days[j].Date) })

	return days, deposits, nil
}
