package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"messmate/internal/models"
	"messmate/internal/storage"
)

// CreateExpense persists a new expense row.
func (s *SQLiteStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	if e.Category == "" {
		e.Category = models.CategoryOther
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, mess_id, date, amount, category, paid_by_member_id, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.MessID, fmtDate(e.Date), e.Amount, string(e.Category),
		nullable(e.PaidByMemberID), e.Note, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// ListExpensesInRange returns expenses with from <= date <= to.
func (s *SQLiteStore) ListExpensesInRange(ctx context.Context, messID string, from, to time.Time) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, mess_id, date, amount, category, paid_by_member_id, note, created_at
		 FROM expenses WHERE mess_id = ? AND date BETWEEN ? AND ? ORDER BY date`,
		messID, fmtDate(from), fmtDate(to),
	)
}

// ListRecentExpenses returns up to limit expenses, newest date first.
func (s *SQLiteStore) ListRecentExpenses(ctx context.Context, messID string, limit int) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, mess_id, date, amount, category, paid_by_member_id, note, created_at
		 FROM expenses WHERE mess_id = ? ORDER BY date DESC, created_at DESC LIMIT ?`,
		messID, limit,
	)
}

// DeleteExpense removes an expense owned by the mess.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, messID, expenseID string) error {
	return s.deleteLedgerRow(ctx, "expenses", messID, expenseID)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...interface{}) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		var date, category string
		var paidBy sql.NullString

		if err := rows.Scan(&e.ID, &e.MessID, &date, &e.Amount, &category,
			&paidBy, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		e.Date, err = parseDate(date)
		if err != nil {
			return nil, err
		}
		e.Category = models.ExpenseCategory(category)
		if paidBy.Valid {
			e.PaidByMemberID = paidBy.String
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// CreateDeposit persists a new deposit row.
func (s *SQLiteStore) CreateDeposit(ctx context.Context, d *models.Deposit) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt == 0 {
		d.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO deposits (id, mess_id, member_id, date, amount, method, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.MessID, d.MemberID, fmtDate(d.Date), d.Amount, d.Method, d.Note, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}

	return nil
}

// ListDepositsInRange returns deposits with from <= date <= to.
func (s *SQLiteStore) ListDepositsInRange(ctx context.Context, messID string, from, to time.Time) ([]*models.Deposit, error) {
	return s.listDeposits(ctx,
		`SELECT id, mess_id, member_id, date, amount, method, note, created_at
		 FROM deposits WHERE mess_id = ? AND date BETWEEN ? AND ? ORDER BY date`,
		messID, fmtDate(from), fmtDate(to),
	)
}

// ListRecentDeposits returns up to limit deposits, newest date first.
func (s *SQLiteStore) ListRecentDeposits(ctx context.Context, messID string, limit int) ([]*models.Deposit, error) {
	return s.listDeposits(ctx,
		`SELECT id, mess_id, member_id, date, amount, method, note, created_at
		 FROM deposits WHERE mess_id = ? ORDER BY date DESC, created_at DESC LIMIT ?`,
		messID, limit,
	)
}

// ListDepositsByMember returns one member's deposits, newest first.
func (s *SQLiteStore) ListDepositsByMember(ctx context.Context, memberID string) ([]*models.Deposit, error) {
	return s.listDeposits(ctx,
		`SELECT id, mess_id, member_id, date, amount, method, note, created_at
		 FROM deposits WHERE member_id = ? ORDER BY date DESC, created_at DESC`,
		memberID,
	)
}

// DeleteDeposit removes a deposit owned by the mess.
func (s *SQLiteStore) DeleteDeposit(ctx context.Context, messID, depositID string) error {
	return s.deleteLedgerRow(ctx, "deposits", messID, depositID)
}

func (s *SQLiteStore) listDeposits(ctx context.Context, query string, args ...interface{}) ([]*models.Deposit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	defer rows.Close()

	var deposits []*models.Deposit
	for rows.Next() {
		d := &models.Deposit{}
		var date string

		if err := rows.Scan(&d.ID, &d.MessID, &d.MemberID, &date, &d.Amount,
			&d.Method, &d.Note, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}

		d.Date, err = parseDate(date)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deposits: %w", err)
	}

	return deposits, nil
}

// deleteLedgerRow deletes an expense or deposit scoped to its mess, so a
// caller can never delete another mess's rows by guessing IDs.
func (s *SQLiteStore) deleteLedgerRow(ctx context.Context, table, messID, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ? AND mess_id = ?", table)
	res, err := s.db.ExecContext(ctx, query, id, messID)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s row %s: %w", table, id, storage.ErrNotFound)
	}

	return nil
}
