package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"messmate/internal/models"
)

// CreateAssignment persists a new manager assignment.
func (s *SQLiteStore) CreateAssignment(ctx context.Context, a *models.ManagerAssignment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO manager_assignments
		   (id, mess_id, manager_user_id, manager_member_id, type, period_label,
		    start_date, end_date, created_by_user_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.MessID, a.ManagerUserID, nullable(a.ManagerMemberID),
		string(a.Type), a.PeriodLabel, fmtDate(a.StartDate), fmtDate(a.EndDate),
		nullable(a.CreatedByUserID), a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

// ListAssignments returns the mess's assignments, newest start first.
func (s *SQLiteStore) ListAssignments(ctx context.Context, messID string) ([]*models.ManagerAssignment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mess_id, manager_user_id, manager_member_id, type, period_label,
		        start_date, end_date, created_by_user_id, created_at
		 FROM manager_assignments WHERE mess_id = ? ORDER BY start_date DESC`,
		messID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*models.ManagerAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return assignments, nil
}

// FindAssignmentCovering returns the most recently started assignment
// whose window contains date for the given user, or nil if none.
func (s *SQLiteStore) FindAssignmentCovering(ctx context.Context, messID, userID string, date time.Time) (*models.ManagerAssignment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, mess_id, manager_user_id, manager_member_id, type, period_label,
		        start_date, end_date, created_by_user_id, created_at
		 FROM manager_assignments
		 WHERE mess_id = ? AND manager_user_id = ? AND start_date <= ? AND end_date >= ?
		 ORDER BY start_date DESC LIMIT 1`,
		messID, userID, fmtDate(date), fmtDate(date),
	)

	a, err := scanAssignment(row)
	if err == sql.ErrNoRows {
		return nil, nil // no active assignment
	}
	if err != nil {
		return nil, err
	}

	return a, nil
}

func scanAssignment(row scanner) (*models.ManagerAssignment, error) {
	a := &models.ManagerAssignment{}
	var memberID, createdBy sql.NullString
	var typ, start, end string

	if err := row.Scan(&a.ID, &a.MessID, &a.ManagerUserID, &memberID, &typ,
		&a.PeriodLabel, &start, &end, &createdBy, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan assignment: %w", err)
	}

	a.Type = models.AssignmentType(typ)
	if memberID.Valid {
		a.ManagerMemberID = memberID.String
	}
	if createdBy.Valid {
		a.CreatedByUserID = createdBy.String
	}

	var err error
	if a.StartDate, err = parseDate(start); err != nil {
		return nil, err
	}
	if a.EndDate, err = parseDate(end); err != nil {
		return nil, err
	}

	return a, nil
}
