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

// CreateMess persists a new mess to the database.
func (s *SQLiteStore) CreateMess(ctx context.Context, mess *models.Mess) error {
	if mess.ID == "" {
		mess.ID = uuid.New().String()
	}
	if mess.CreatedAt == 0 {
		mess.CreatedAt = time.Now().Unix()
	}
	if mess.Currency == "" {
		mess.Currency = models.DefaultCurrency
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messes (id, name, owner_id, currency, include_breakfast, breakfast_weight, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		mess.ID, mess.Name, mess.OwnerID, mess.Currency,
		boolToInt(mess.IncludeBreakfast), mess.BreakfastWeight, mess.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create mess: %w", err)
	}

	return nil
}

// GetMess retrieves a mess by ID.
func (s *SQLiteStore) GetMess(ctx context.Context, messID string) (*models.Mess, error) {
	mess := &models.Mess{}
	var includeBreakfast int

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, owner_id, currency, include_breakfast, breakfast_weight, created_at
		 FROM messes WHERE id = ?`,
		messID,
	).Scan(&mess.ID, &mess.Name, &mess.OwnerID, &mess.Currency,
		&includeBreakfast, &mess.BreakfastWeight, &mess.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("mess %s: %w", messID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mess: %w", err)
	}

	mess.IncludeBreakfast = includeBreakfast != 0
	return mess, nil
}

// UpdateMessSettings writes the mutable mess settings.
func (s *SQLiteStore) UpdateMessSettings(ctx context.Context, mess *models.Mess) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE messes SET name = ?, currency = ?, include_breakfast = ?, breakfast_weight = ?
		 WHERE id = ?`,
		mess.Name, mess.Currency, boolToInt(mess.IncludeBreakfast), mess.BreakfastWeight, mess.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update mess settings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check mess update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("mess %s: %w", mess.ID, storage.ErrNotFound)
	}

	return nil
}

// CreateMembership associates a user with a mess.
func (s *SQLiteStore) CreateMembership(ctx context.Context, m *models.Membership) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO memberships (mess_id, user_id, role) VALUES (?, ?, ?)",
		m.MessID, m.UserID, string(m.Role),
	)
	if err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

// GetMembershipForUser returns the user's membership, if any.
func (s *SQLiteStore) GetMembershipForUser(ctx context.Context, userID string) (*models.Membership, error) {
	m := &models.Membership{}
	var role string

	err := s.db.QueryRowContext(ctx,
		"SELECT mess_id, user_id, role FROM memberships WHERE user_id = ? LIMIT 1",
		userID,
	).Scan(&m.MessID, &m.UserID, &role)

	if err == sql.ErrNoRows {
		return nil, nil // no mess yet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	m.Role = models.Role(role)
	return m, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
