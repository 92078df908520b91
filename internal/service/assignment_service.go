package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"messmate/internal/models"
	"messmate/internal/storage"
)

// AssignmentService creates and lists meal manager assignments.
type AssignmentService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewAssignmentService creates a new AssignmentService with the given storage backend.
func NewAssignmentService(store storage.Store, logger *slog.Logger) *AssignmentService {
	return &AssignmentService{store: store, logger: logger}
}

// AssignmentInput is a request to assign a manager.
type AssignmentInput struct {
	ManagerUserID   string
	ManagerMemberID string // optional linked member row
	PeriodLabel     string // e.g. "1week", "10days", "custom"
	StartDate       time.Time
	EndDate         time.Time
}

// classifyPeriod maps a period label to an assignment type.
func classifyPeriod(label string) models.AssignmentType {
	switch {
	case strings.HasSuffix(label, "week"), strings.HasSuffix(label, "weeks"):
		return models.AssignmentWeek
	case strings.HasSuffix(label, "days"):
		return models.AssignmentDays
	default:
		return models.AssignmentCustom
	}
}

// Create stores a new assignment. Super admin only. The manager must
// hold a membership in the mess, and the window must not be reversed.
func (s *AssignmentService) Create(ctx context.Context, userID string, in AssignmentInput) (*models.ManagerAssignment, error) {
	mess, err := requireSuperAdmin(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	start := models.DateOnly(in.StartDate)
	end := models.DateOnly(in.EndDate)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	managerMembership, err := s.store.GetMembershipForUser(ctx, in.ManagerUserID)
	if err != nil {
		return nil, err
	}
	if managerMembership == nil || managerMembership.MessID != mess.ID {
		return nil, fmt.Errorf("%w: manager is not a member of this mess", ErrInvalidInput)
	}

	if in.ManagerMemberID != "" {
		member, err := s.store.GetMember(ctx, in.ManagerMemberID)
		if err != nil || member.MessID != mess.ID {
			return nil, fmt.Errorf("%w: unknown member %s", ErrInvalidInput, in.ManagerMemberID)
		}
	}

	assignment := &models.ManagerAssignment{
		MessID:          mess.ID,
		ManagerUserID:   in.ManagerUserID,
		ManagerMemberID: in.ManagerMemberID,
		Type:            classifyPeriod(in.PeriodLabel),
		PeriodLabel:     in.PeriodLabel,
		StartDate:       start,
		EndDate:         end,
		CreatedByUserID: userID,
	}
	if err := s.store.CreateAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	s.logger.Info("manager assigned",
		"mess_id", mess.ID,
		"assignment_id", assignment.ID,
		"manager_user_id", assignment.ManagerUserID,
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"),
	)
	return assignment, nil
}

// List returns the mess's assignments, newest start first. Any member
// may look; the dashboard shows the same data in aggregate.
func (s *AssignmentService) List(ctx context.Context, userID string) ([]*models.ManagerAssignment, error) {
	mess, _, err := messForUser(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListAssignments(ctx, mess.ID)
}
