package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"messmate/internal/models"
)

// UpsertMeals writes one day's meal rows in a single transaction.
// The UNIQUE(mess_id, member_id, date) constraint backs the upsert.
func (s *SQLiteStore) UpsertMeals(ctx context.Context, meals []*models.Meal) error {
	if len(meals) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, meal := range meals {
		if meal.ID == "" {
			meal.ID = uuid.New().String()
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO meals (id, mess_id, member_id, date, breakfast, lunch, dinner, extra)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (mess_id, member_id, date) DO UPDATE SET
			   breakfast = excluded.breakfast,
			   lunch = excluded.lunch,
			   dinner = excluded.dinner,
			   extra = excluded.extra`,
			meal.ID, meal.MessID, meal.MemberID, fmtDate(meal.Date),
			boolToInt(meal.Breakfast), boolToInt(meal.Lunch), boolToInt(meal.Dinner), meal.Extra,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert meal: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListMealsByDate returns the mess's meal rows on one date.
func (s *SQLiteStore) ListMealsByDate(ctx context.Context, messID string, date time.Time) ([]*models.Meal, error) {
	return s.listMeals(ctx,
		`SELECT id, mess_id, member_id, date, breakfast, lunch, dinner, extra
		 FROM meals WHERE mess_id = ? AND date = ?`,
		messID, fmtDate(date),
	)
}

// ListMealsInRange returns meal rows with from <= date <= to.
func (s *SQLiteStore) ListMealsInRange(ctx context.Context, messID string, from, to time.Time) ([]*models.Meal, error) {
	return s.listMeals(ctx,
		`SELECT id, mess_id, member_id, date, breakfast, lunch, dinner, extra
		 FROM meals WHERE mess_id = ? AND date BETWEEN ? AND ? ORDER BY date`,
		messID, fmtDate(from), fmtDate(to),
	)
}

// ListMealsByMember returns one member's meal rows, newest date first.
func (s *SQLiteStore) ListMealsByMember(ctx context.Context, memberID string) ([]*models.Meal, error) {
	return s.listMeals(ctx,
		`SELECT id, mess_id, member_id, date, breakfast, lunch, dinner, extra
		 FROM meals WHERE member_id = ? ORDER BY date DESC`,
		memberID,
	)
}

func (s *SQLiteStore) listMeals(ctx context.Context, query string, args ...interface{}) ([]*models.Meal, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	var meals []*models.Meal
	for rows.Next() {
		meal := &models.Meal{}
		var date string
		var breakfast, lunch, dinner int

		if err := rows.Scan(&meal.ID, &meal.MessID, &meal.MemberID, &date,
			&breakfast, &lunch, &dinner, &meal.Extra); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}

		meal.Date, err = parseDate(date)
		if err != nil {
			return nil, err
		}
		meal.Breakfast = breakfast != 0
		meal.Lunch = lunch != 0
		meal.Dinner = dinner != 0
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meals: %w", err)
	}

	return meals, nil
}
