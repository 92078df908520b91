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

// historyDays is how far back the recent-meals view reaches, the
// selected date included.
const historyDays = 7

// MealService reads and writes the per-date meal sheet.
type MealService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewMealService creates a new MealService with the given storage backend.
func NewMealService(store storage.Store, logger *slog.Logger) *MealService {
	return &MealService{store: store, logger: logger}
}

// SheetEntry is one member's line on the day sheet.
type SheetEntry struct {
	MemberID   string
	MemberName string
	Breakfast  bool
	Lunch      bool
	Dinner     bool
	Extra      float64
	// FromDefault is true when the line was pre-filled from the
	// member's default pattern rather than a saved record.
	FromDefault bool
}

// DaySheet is the editable meal sheet for one date.
type DaySheet struct {
	Date    time.Time
	Entries []SheetEntry
	// Editable tells the caller whether the acting user may save this
	// sheet (super admin, or manager with a covering assignment).
	Editable bool
	// Assignment is the covering assignment when the user edits as a
	// manager rather than as super admin (nil otherwise).
	Assignment *models.ManagerAssignment
}

// canEdit decides whether the user may save meals on date, returning
// the covering assignment when editing rights come from one.
func (s *MealService) canEdit(ctx context.Context, mess *models.Mess, membership *models.Membership, date time.Time) (bool, *models.ManagerAssignment, error) {
	if membership.Role == models.RoleSuperAdmin {
		return true, nil, nil
	}

	a, err := s.store.FindAssignmentCovering(ctx, mess.ID, membership.UserID, date)
	if err != nil {
		return false, nil, err
	}
	if a == nil {
		return false, nil, nil
	}
	return true, a, nil
}

// GetDaySheet builds the sheet for one date. Lines come from saved meal
// rows where they exist and from member default patterns otherwise.
func (s *MealService) GetDaySheet(ctx context.Context, userID string, date time.Time) (*DaySheet, error) {
	mess, membership, err := messForUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	date = models.DateOnly(date)

	members, err := s.store.ListMembers(ctx, mess.ID, true)
	if err != nil {
		return nil, err
	}
	meals, err := s.store.ListMealsByDate(ctx, mess.ID, date)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]*models.Meal, len(meals))
	for _, m := range meals {
		existing[m.MemberID] = m
	}

	entries := make([]SheetEntry, 0, len(members))
	for _, member := range members {
		if meal, ok := existing[member.ID]; ok {
			entries = append(entries, SheetEntry{
				MemberID:   member.ID,
				MemberName: member.Name,
				Breakfast:  meal.Breakfast,
				Lunch:      meal.Lunch,
				Dinner:     meal.Dinner,
				Extra:      meal.Extra,
			})
			continue
		}
		pattern := member.DefaultPattern
		entries = append(entries, SheetEntry{
			MemberID:    member.ID,
			MemberName:  member.Name,
			Breakfast:   pattern.Breakfast(),
			Lunch:       pattern.Lunch(),
			Dinner:      pattern.Dinner(),
			FromDefault: true,
		})
	}

	editable, assignment, err := s.canEdit(ctx, mess, membership, date)
	if err != nil {
		return nil, err
	}

	return &DaySheet{
		Date:       date,
		Entries:    entries,
		Editable:   editable,
		Assignment: assignment,
	}, nil
}

// SaveEntry is one member's line in a save request.
type SaveEntry struct {
	MemberID  string
	Breakfast bool
	Lunch     bool
	Dinner    bool
	Extra     float64
}

// SaveDaySheet upserts one meal row per entry for the given date.
// Super admins may save any date; managers only dates their assignment
// covers (ErrDateNotAllowed otherwise). Entries for unknown or inactive
// members are rejected.
func (s *MealService) SaveDaySheet(ctx context.Context, userID string, date time.Time, entries []SaveEntry) error {
	mess, membership, err := messForUser(ctx, s.store, userID)
	if err != nil {
		return err
	}
	date = models.DateOnly(date)

	editable, _, err := s.canEdit(ctx, mess, membership, date)
	if err != nil {
		return err
	}
	if !editable {
		if membership.Role == models.RoleSuperAdmin {
			return ErrPermissionDenied
		}
		return ErrDateNotAllowed
	}

	members, err := s.store.ListMembers(ctx, mess.ID, true)
	if err != nil {
		return err
	}
	active := make(map[string]bool, len(members))
	for _, m := range members {
		active[m.ID] = true
	}

	meals := make([]*models.Meal, 0, len(entries))
	for _, e := range entries {
		if !active[e.MemberID] {
			return fmt.Errorf("%w: unknown or inactive member %s", ErrInvalidInput, e.MemberID)
		}
		if e.Extra < 0 {
			return fmt.Errorf("%w: extra meals cannot be negative", ErrInvalidInput)
		}
		meals = append(meals, &models.Meal{
			MessID:    mess.ID,
			MemberID:  e.MemberID,
			Date:      date,
			Breakfast: e.Breakfast,
			Lunch:     e.Lunch,
			Dinner:    e.Dinner,
			Extra:     e.Extra,
		})
	}

	if err := s.store.UpsertMeals(ctx, meals); err != nil {
		return err
	}

	s.logger.Info("day sheet saved",
		"mess_id", mess.ID,
		"date", date.Format("2006-01-02"),
		"rows", len(meals),
		"by", userID,
	)
	return nil
}

// DayTotals summarizes one past date for the recent-meals table.
type DayTotals struct {
	Date           time.Time
	MemberCount    int
	BreakfastCount int
	LunchCount     int
	DinnerCount    int
	ExtraTotal     float64
	MealUnits      float64
}

// RecentDays returns per-date totals for the week ending on date,
// newest first. Dates without any rows are omitted.
func (s *MealService) RecentDays(ctx context.Context, userID string, date time.Time) ([]DayTotals, error) {
	mess, _, err := messForUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	date = models.DateOnly(date)
	from := date.AddDate(0, 0, -(historyDays - 1))

	meals, err := s.store.ListMealsInRange(ctx, mess.ID, from, date)
	if err != nil {
		return nil, err
	}

	settings := calculator.Settings{
		IncludeBreakfast: mess.IncludeBreakfast,
		BreakfastWeight:  mess.BreakfastWeight,
	}

	byDate := make(map[time.Time]*DayTotals)
	for _, m := range meals {
		d := models.DateOnly(m.Date)
		totals, ok := byDate[d]
		if !ok {
			totals = &DayTotals{Date: d}
			byDate[d] = totals
		}

		totals.MemberCount++
		if m.Breakfast {
			totals.BreakfastCount++
		}
		if m.Lunch {
			totals.LunchCount++
		}
		if m.Dinner {
			totals.DinnerCount++
		}
		totals.ExtraTotal += m.Extra
		totals.MealUnits += calculator.MealUnits(settings, calculator.MealEntry{
			Breakfast: m.Breakfast,
			Lunch:     m.Lunch,
			Dinner:    m.Dinner,
			Extra:     m.Extra,
		})
	}

	// Walk the window backwards so output is newest first without a sort.
	days := make([]DayTotals, 0, len(byDate))
	for d := date; !d.Before(from); d = d.AddDate(0, 0, -1) {
		if totals, ok := byDate[d]; ok {
			days = append(days, *totals)
		}
	}

	return days, nil
}
