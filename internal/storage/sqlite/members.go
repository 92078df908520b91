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

// CreateMember inserts a new member row.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}
	if member.DefaultPattern == "" {
		member.DefaultPattern = models.PatternNone
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (id, mess_id, user_id, name, phone, active, default_pattern, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		member.ID, member.MessID, nullable(member.UserID), member.Name, member.Phone,
		boolToInt(member.Active), string(member.DefaultPattern), member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

// GetMember retrieves a member by ID.
func (s *SQLiteStore) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, mess_id, user_id, name, phone, active, default_pattern, created_at
		 FROM members WHERE id = ?`,
		memberID,
	)

	member, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// ListMembers returns the mess's members ordered by name.
func (s *SQLiteStore) ListMembers(ctx context.Context, messID string, activeOnly bool) ([]*models.Member, error) {
	query := `SELECT id, mess_id, user_id, name, phone, active, default_pattern, created_at
		 FROM members WHERE mess_id = ?`
	if activeOnly {
		query += " AND active = 1"
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, messID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// DeactivateMember soft-deletes a member.
func (s *SQLiteStore) DeactivateMember(ctx context.Context, memberID string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE members SET active = 0 WHERE id = ?", memberID)
	if err != nil {
		return fmt.Errorf("failed to deactivate member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check member update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("member %s: %w", memberID, storage.ErrNotFound)
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMember(row scanner) (*models.Member, error) {
	member := &models.Member{}
	var userID sql.NullString
	var active int
	var pattern string

	if err := row.Scan(&member.ID, &member.MessID, &userID, &member.Name,
		&member.Phone, &active, &pattern, &member.CreatedAt); err != nil {
		return nil, err
	}

	if userID.Valid {
		member.UserID = userID.String
	}
	member.Active = active != 0
	member.DefaultPattern = models.MealPattern(pattern)
	return member, nil
}
