package service

import (
	"context"
	"fmt"
	"log/slog"

	"messmate/internal/calculator"
	"messmate/internal/models"
	"messmate/internal/storage"
)

// MemberService manages the mess roster and per-member history.
type MemberService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewMemberService creates a new MemberService with the given storage backend.
func NewMemberService(store storage.Store, logger *slog.Logger) *MemberService {
	return &MemberService{store: store, logger: logger}
}

// List returns the mess roster. Super admin only; regular members see
// each other through the dashboard instead.
func (s *MemberService) List(ctx context.Context, userID string) ([]*models.Member, error) {
	mess, err := requireSuperAdmin(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListMembers(ctx, mess.ID, false)
}

// MemberInput is a request to add a member.
type MemberInput struct {
	Name           string
	Phone          string
	UserID         string // optional linked login account
	DefaultPattern models.MealPattern
}

// Add creates a member row. Super admin only.
func (s *MemberService) Add(ctx context.Context, userID string, in MemberInput) (*models.Member, error) {
	mess, err := requireSuperAdmin(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	if in.Name == "" {
		return nil, fmt.Errorf("%w: member name required", ErrInvalidInput)
	}
	pattern := in.DefaultPattern
	if pattern == "" {
		pattern = models.PatternNone
	}
	if !pattern.Valid() {
		return nil, fmt.Errorf("%w: unknown meal pattern %q", ErrInvalidInput, pattern)
	}

	member := &models.Member{
		MessID:         mess.ID,
		UserID:         in.UserID,
		Name:           in.Name,
		Phone:          in.Phone,
		Active:         true,
		DefaultPattern: pattern,
	}
	if err := s.store.CreateMember(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("member added", "mess_id", mess.ID, "member_id", member.ID, "name", member.Name)
	return member, nil
}

// Deactivate soft-deletes a member, keeping history. Super admin only.
func (s *MemberService) Deactivate(ctx context.Context, userID, memberID string) error {
	mess, err := requireSuperAdmin(ctx, s.store, userID)
	if err != nil {
		return err
	}

	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return err
	}
	if member.MessID != mess.ID {
		return fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}

	if err := s.store.DeactivateMember(ctx, memberID); err != nil {
		return err
	}

	s.logger.Info("member deactivated", "mess_id", mess.ID, "member_id", memberID)
	return nil
}

// MealHistoryRow is one dated meal record with its unit value.
type MealHistoryRow struct {
	Meal  *models.Meal
	Units float64
}

// MemberDetail is a member's full meal and deposit history.
type MemberDetail struct {
	Member        *models.Member
	Meals         []MealHistoryRow
	Deposits      []*models.Deposit
	TotalMeals    float64
	TotalDeposits float64
}

// Detail returns a member's history. Allowed for the super admin and
// for the member's own linked account.
func (s *MemberService) Detail(ctx context.Context, userID, memberID string) (*MemberDetail, error) {
	mess, membership, err := messForUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member.MessID != mess.ID {
		return nil, fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}

	if membership.Role != models.RoleSuperAdmin && member.UserID != userID {
		return nil, ErrPermissionDenied
	}

	meals, err := s.store.ListMealsByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	deposits, err := s.store.ListDepositsByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	settings := calculator.Settings{
		IncludeBreakfast: mess.IncludeBreakfast,
		BreakfastWeight:  mess.BreakfastWeight,
	}

	detail := &MemberDetail{Member: member, Deposits: deposits}
	for _, m := range meals {
		units := calculator.MealUnits(settings, calculator.MealEntry{
			Breakfast: m.Breakfast,
			Lunch:     m.Lunch,
			Dinner:    m.Dinner,
			Extra:     m.Extra,
		})
		detail.Meals = append(detail.Meals, MealHistoryRow{Meal: m, Units: units})
		detail.TotalMeals += units
	}
	for _, d := range deposits {
		detail.TotalDeposits += d.Amount
	}

	return detail, nil
}
