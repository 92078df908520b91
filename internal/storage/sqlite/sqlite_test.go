package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"messmate/internal/models"
	"messmate/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "messmate-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func seedMess(t *testing.T, store *SQLiteStore, email string) (*models.User, *models.Mess) {
	t.Helper()
	ctx := context.Background()

	user := models.NewUser(email, "Test Admin", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	mess := &models.Mess{
		Name:             "Test Mess",
		OwnerID:          user.ID,
		IncludeBreakfast: true,
		BreakfastWeight:  models.DefaultBreakfastWeight,
	}
	if err := store.CreateMess(ctx, mess); err != nil {
		t.Fatalf("CreateMess failed: %v", err)
	}

	if err := store.CreateMembership(ctx, &models.Membership{
		MessID: mess.ID, UserID: user.ID, Role: models.RoleSuperAdmin,
	}); err != nil {
		t.Fatalf("CreateMembership failed: %v", err)
	}

	return user, mess
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser generates ID and timestamps", func(t *testing.T) {
		user := &models.User{
			Email:        "fresh@example.com",
			DisplayName:  "Fresh",
			PasswordHash: "hash",
		}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}
		if user.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetUserByEmail(ctx, "fresh@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got == nil || got.ID != user.ID {
			t.Errorf("GetUserByEmail returned %+v, want ID %s", got, user.ID)
		}
	})

	t.Run("GetUserByEmail returns nil for unknown email", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil user, got %+v", got)
		}
	})

	t.Run("Mess and membership round trip", func(t *testing.T) {
		user, mess := seedMess(t, store, "admin1@example.com")

		got, err := store.GetMess(ctx, mess.ID)
		if err != nil {
			t.Fatalf("GetMess failed: %v", err)
		}
		if got.Name != "Test Mess" {
			t.Errorf("Name mismatch: got %s", got.Name)
		}
		if !got.IncludeBreakfast {
			t.Error("Expected IncludeBreakfast to round trip as true")
		}
		if got.BreakfastWeight != models.DefaultBreakfastWeight {
			t.Errorf("BreakfastWeight mismatch: got %f", got.BreakfastWeight)
		}
		if got.Currency != models.DefaultCurrency {
			t.Errorf("Expected default currency, got %s", got.Currency)
		}

		membership, err := store.GetMembershipForUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetMembershipForUser failed: %v", err)
		}
		if membership == nil || membership.Role != models.RoleSuperAdmin {
			t.Errorf("Expected super_admin membership, got %+v", membership)
		}
	})

	t.Run("GetMembershipForUser returns nil without a mess", func(t *testing.T) {
		loner := models.NewUser("loner@example.com", "Loner", "hash")
		if err := store.CreateUser(ctx, loner); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		membership, err := store.GetMembershipForUser(ctx, loner.ID)
		if err != nil {
			t.Fatalf("GetMembershipForUser failed: %v", err)
		}
		if membership != nil {
			t.Errorf("Expected nil membership, got %+v", membership)
		}
	})

	t.Run("UpdateMessSettings persists changes", func(t *testing.T) {
		_, mess := seedMess(t, store, "admin2@example.com")

		mess.Name = "Renamed"
		mess.Currency = "USD"
		mess.IncludeBreakfast = false
		mess.BreakfastWeight = 1.0
		if err := store.UpdateMessSettings(ctx, mess); err != nil {
			t.Fatalf("UpdateMessSettings failed: %v", err)
		}

		got, err := store.GetMess(ctx, mess.ID)
		if err != nil {
			t.Fatalf("GetMess failed: %v", err)
		}
		if got.Name != "Renamed" || got.Currency != "USD" || got.IncludeBreakfast || got.BreakfastWeight != 1.0 {
			t.Errorf("Settings did not persist: %+v", got)
		}
	})

	t.Run("UpdateMessSettings on unknown mess returns ErrNotFound", func(t *testing.T) {
		err := store.UpdateMessSettings(ctx, &models.Mess{ID: "missing", Name: "x"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStoreMembers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, mess := seedMess(t, store, "admin@example.com")

	alice := &models.Member{
		MessID:         mess.ID,
		Name:           "Alice",
		Active:         true,
		DefaultPattern: models.PatternAllMeals,
	}
	bob := &models.Member{
		MessID: mess.ID,
		Name:   "Bob",
		Active: true,
	}
	for _, m := range []*models.Member{alice, bob} {
		if err := store.CreateMember(ctx, m); err != nil {
			t.Fatalf("CreateMember failed: %v", err)
		}
	}

	t.Run("CreateMember defaults pattern to NONE", func(t *testing.T) {
		got, err := store.GetMember(ctx, bob.ID)
		if err != nil {
			t.Fatalf("GetMember failed: %v", err)
		}
		if got.DefaultPattern != models.PatternNone {
			t.Errorf("Expected NONE pattern, got %s", got.DefaultPattern)
		}
		if got.UserID != "" {
			t.Errorf("Expected empty UserID for unlinked member, got %q", got.UserID)
		}
	})

	t.Run("Duplicate member name in mess is rejected", func(t *testing.T) {
		dup := &models.Member{MessID: mess.ID, Name: "Alice", Active: true}
		if err := store.CreateMember(ctx, dup); err == nil {
			t.Error("Expected error for duplicate member name")
		}
	})

	t.Run("ListMembers honors activeOnly", func(t *testing.T) {
		if err := store.DeactivateMember(ctx, bob.ID); err != nil {
			t.Fatalf("DeactivateMember failed: %v", err)
		}

		all, err := store.ListMembers(ctx, mess.ID, false)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(all) != 2 {
			t.Errorf("Expected 2 members, got %d", len(all))
		}

		active, err := store.ListMembers(ctx, mess.ID, true)
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		if len(active) != 1 || active[0].Name != "Alice" {
			t.Errorf("Expected only Alice active, got %+v", active)
		}
	})

	t.Run("DeactivateMember on unknown ID returns ErrNotFound", func(t *testing.T) {
		if err := store.DeactivateMember(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestSQLiteStoreMeals(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, mess := seedMess(t, store, "admin@example.com")

	member := &models.Member{MessID: mess.ID, Name: "Alice", Active: true}
	if err := store.CreateMember(ctx, member); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}

	day := mustDate(t, "2026-08-10")

	t.Run("UpsertMeals inserts then updates in place", func(t *testing.T) {
		meal := &models.Meal{
			MessID:   mess.ID,
			MemberID: member.ID,
			Date:     day,
			Lunch:    true,
			Dinner:   true,
		}
		if err := store.UpsertMeals(ctx, []*models.Meal{meal}); err != nil {
			t.Fatalf("UpsertMeals failed: %v", err)
		}

		// Second save for the same (member, date) must replace, not add.
		update := &models.Meal{
			MessID:    mess.ID,
			MemberID:  member.ID,
			Date:      day,
			Breakfast: true,
			Lunch:     true,
			Extra:     1.5,
		}
		if err := store.UpsertMeals(ctx, []*models.Meal{update}); err != nil {
			t.Fatalf("UpsertMeals update failed: %v", err)
		}

		meals, err := store.ListMealsByDate(ctx, mess.ID, day)
		if err != nil {
			t.Fatalf("ListMealsByDate failed: %v", err)
		}
		if len(meals) != 1 {
			t.Fatalf("Expected 1 meal row, got %d", len(meals))
		}
		got := meals[0]
		if !got.Breakfast || !got.Lunch || got.Dinner {
			t.Errorf("Flags not updated: %+v", got)
		}
		if got.Extra != 1.5 {
			t.Errorf("Extra mismatch: got %f", got.Extra)
		}
	})

	t.Run("ListMealsInRange is inclusive on both ends", func(t *testing.T) {
		for _, d := range []string{"2026-08-11", "2026-08-12", "2026-08-13"} {
			meal := &models.Meal{MessID: mess.ID, MemberID: member.ID, Date: mustDate(t, d), Lunch: true}
			if err := store.UpsertMeals(ctx, []*models.Meal{meal}); err != nil {
				t.Fatalf("UpsertMeals failed: %v", err)
			}
		}

		meals, err := store.ListMealsInRange(ctx, mess.ID, mustDate(t, "2026-08-11"), mustDate(t, "2026-08-13"))
		if err != nil {
			t.Fatalf("ListMealsInRange failed: %v", err)
		}
		if len(meals) != 3 {
			t.Errorf("Expected 3 meals, got %d", len(meals))
		}
	})

	t.Run("ListMealsByMember returns newest first", func(t *testing.T) {
		meals, err := store.ListMealsByMember(ctx, member.ID)
		if err != nil {
			t.Fatalf("ListMealsByMember failed: %v", err)
		}
		if len(meals) < 2 {
			t.Fatalf("Expected several meals, got %d", len(meals))
		}
		for i := 1; i < len(meals); i++ {
			if meals[i].Date.After(meals[i-1].Date) {
				t.Errorf("Meals not sorted newest first at index %d", i)
			}
		}
	})
}

func TestSQLiteStoreLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	_, mess := seedMess(t, store, "admin@example.com")

	member := &models.Member{MessID: mess.ID, Name: "Alice", Active: true}
	if err := store.CreateMember(ctx, member); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}

	t.Run("Expense round trip with default category", func(t *testing.T) {
		e := &models.Expense{
			MessID: mess.ID,
			Date:   mustDate(t, "2026-08-05"),
			Amount: 250,
			Note:   "bazar",
		}
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expenses, err := store.ListExpensesInRange(ctx, mess.ID, mustDate(t, "2026-08-01"), mustDate(t, "2026-08-31"))
		if err != nil {
			t.Fatalf("ListExpensesInRange failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("Expected 1 expense, got %d", len(expenses))
		}
		if expenses[0].Category != models.CategoryOther {
			t.Errorf("Expected default category other, got %s", expenses[0].Category)
		}
		if expenses[0].PaidByMemberID != "" {
			t.Errorf("Expected empty PaidByMemberID, got %q", expenses[0].PaidByMemberID)
		}
	})

	t.Run("ListRecentExpenses returns newest date first", func(t *testing.T) {
		for _, d := range []string{"2026-08-06", "2026-08-08", "2026-08-07"} {
			e := &models.Expense{MessID: mess.ID, Date: mustDate(t, d), Amount: 100}
			if err := store.CreateExpense(ctx, e); err != nil {
				t.Fatalf("CreateExpense failed: %v", err)
			}
		}

		expenses, err := store.ListRecentExpenses(ctx, mess.ID, 2)
		if err != nil {
			t.Fatalf("ListRecentExpenses failed: %v", err)
		}
		if len(expenses) != 2 {
			t.Fatalf("Expected 2 expenses, got %d", len(expenses))
		}
		if !expenses[0].Date.Equal(mustDate(t, "2026-08-08")) {
			t.Errorf("Expected newest expense first, got %v", expenses[0].Date)
		}
	})

	t.Run("DeleteExpense is scoped to the mess", func(t *testing.T) {
		e := &models.Expense{MessID: mess.ID, Date: mustDate(t, "2026-08-09"), Amount: 50}
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		if err := store.DeleteExpense(ctx, "other-mess", e.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound deleting across messes, got %v", err)
		}
		if err := store.DeleteExpense(ctx, mess.ID, e.ID); err != nil {
			t.Errorf("DeleteExpense failed: %v", err)
		}
	})

	t.Run("Deposit round trip and per-member listing", func(t *testing.T) {
		d := &models.Deposit{
			MessID:   mess.ID,
			MemberID: member.ID,
			Date:     mustDate(t, "2026-08-03"),
			Amount:   1000,
			Method:   "cash",
		}
		if err := store.CreateDeposit(ctx, d); err != nil {
			t.Fatalf("CreateDeposit failed: %v", err)
		}

		deposits, err := store.ListDepositsByMember(ctx, member.ID)
		if err != nil {
			t.Fatalf("ListDepositsByMember failed: %v", err)
		}
		if len(deposits) != 1 || deposits[0].Amount != 1000 || deposits[0].Method != "cash" {
			t.Errorf("Deposit did not round trip: %+v", deposits)
		}
	})

	t.Run("DeleteDeposit is scoped to the mess", func(t *testing.T) {
		d := &models.Deposit{MessID: mess.ID, MemberID: member.ID, Date: mustDate(t, "2026-08-04"), Amount: 10}
		if err := store.CreateDeposit(ctx, d); err != nil {
			t.Fatalf("CreateDeposit failed: %v", err)
		}

		if err := store.DeleteDeposit(ctx, "other-mess", d.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound deleting across messes, got %v", err)
		}
		if err := store.DeleteDeposit(ctx, mess.ID, d.ID); err != nil {
			t.Errorf("DeleteDeposit failed: %v", err)
		}
	})
}

func TestSQLiteStoreAssignments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	admin, mess := seedMess(t, store, "admin@example.com")

	manager := models.NewUser("manager@example.com", "Manager", "hash")
	if err := store.CreateUser(ctx, manager); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := store.CreateMembership(ctx, &models.Membership{
		MessID: mess.ID, UserID: manager.ID, Role: models.RoleManager,
	}); err != nil {
		t.Fatalf("CreateMembership failed: %v", err)
	}

	a := &models.ManagerAssignment{
		MessID:          mess.ID,
		ManagerUserID:   manager.ID,
		Type:            models.AssignmentWeek,
		PeriodLabel:     "1week",
		StartDate:       mustDate(t, "2026-08-10"),
		EndDate:         mustDate(t, "2026-08-16"),
		CreatedByUserID: admin.ID,
	}
	if err := store.CreateAssignment(ctx, a); err != nil {
		t.Fatalf("CreateAssignment failed: %v", err)
	}

	t.Run("FindAssignmentCovering matches inclusive bounds", func(t *testing.T) {
		for _, d := range []string{"2026-08-10", "2026-08-13", "2026-08-16"} {
			got, err := store.FindAssignmentCovering(ctx, mess.ID, manager.ID, mustDate(t, d))
			if err != nil {
				t.Fatalf("FindAssignmentCovering failed: %v", err)
			}
			if got == nil || got.ID != a.ID {
				t.Errorf("Expected assignment to cover %s", d)
			}
		}
	})

	t.Run("FindAssignmentCovering misses outside the window", func(t *testing.T) {
		for _, d := range []string{"2026-08-09", "2026-08-17"} {
			got, err := store.FindAssignmentCovering(ctx, mess.ID, manager.ID, mustDate(t, d))
			if err != nil {
				t.Fatalf("FindAssignmentCovering failed: %v", err)
			}
			if got != nil {
				t.Errorf("Expected no assignment on %s, got %+v", d, got)
			}
		}
	})

	t.Run("FindAssignmentCovering ignores other users", func(t *testing.T) {
		got, err := store.FindAssignmentCovering(ctx, mess.ID, admin.ID, mustDate(t, "2026-08-13"))
		if err != nil {
			t.Fatalf("FindAssignmentCovering failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected no assignment for admin, got %+v", got)
		}
	})

	t.Run("ListAssignments returns newest start first", func(t *testing.T) {
		later := &models.ManagerAssignment{
			MessID:        mess.ID,
			ManagerUserID: manager.ID,
			Type:          models.AssignmentDays,
			PeriodLabel:   "10days",
			StartDate:     mustDate(t, "2026-08-20"),
			EndDate:       mustDate(t, "2026-08-29"),
		}
		if err := store.CreateAssignment(ctx, later); err != nil {
			t.Fatalf("CreateAssignment failed: %v", err)
		}

		assignments, err := store.ListAssignments(ctx, mess.ID)
		if err != nil {
			t.Fatalf("ListAssignments failed: %v", err)
		}
		if len(assignments) != 2 {
			t.Fatalf("Expected 2 assignments, got %d", len(assignments))
		}
		if assignments[0].ID != later.ID {
			t.Error("Expected newest start date first")
		}
	})
}
