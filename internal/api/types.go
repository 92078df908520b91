package api

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"messmate/internal/models"
)

const dateLayout = "2006-01-02"

// parseDateQuery reads an ISO date from the query string, defaulting to
// today when absent.
func parseDateQuery(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return models.DateOnly(time.Now()), nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(400, fmt.Sprintf("invalid %s: want YYYY-MM-DD", name))
	}
	return t, nil
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

type memberResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Phone          string `json:"phone,omitempty"`
	UserID         string `json:"user_id,omitempty"`
	Active         bool   `json:"active"`
	DefaultPattern string `json:"default_pattern"`
	CreatedAt      int64  `json:"created_at"`
}

func toMemberResponse(m *models.Member) memberResponse {
	return memberResponse{
		ID:             m.ID,
		Name:           m.Name,
		Phone:          m.Phone,
		UserID:         m.UserID,
		Active:         m.Active,
		DefaultPattern: string(m.DefaultPattern),
		CreatedAt:      m.CreatedAt,
	}
}

type expenseResponse struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	Amount         float64 `json:"amount"`
	Category       string  `json:"category"`
	PaidByMemberID string  `json:"paid_by_member_id,omitempty"`
	Note           string  `json:"note,omitempty"`
	CreatedAt      int64   `json:"created_at"`
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:             e.ID,
		Date:           e.Date.Format(dateLayout),
		Amount:         e.Amount,
		Category:       string(e.Category),
		PaidByMemberID: e.PaidByMemberID,
		Note:           e.Note,
		CreatedAt:      e.CreatedAt,
	}
}

type depositResponse struct {
	ID        string  `json:"id"`
	MemberID  string  `json:"member_id"`
	Date      string  `json:"date"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method,omitempty"`
	Note      string  `json:"note,omitempty"`
	CreatedAt int64   `json:"created_at"`
}

func toDepositResponse(d *models.Deposit) depositResponse {
	return depositResponse{
		ID:        d.ID,
		MemberID:  d.MemberID,
		Date:      d.Date.Format(dateLayout),
		Amount:    d.Amount,
		Method:    d.Method,
		Note:      d.Note,
		CreatedAt: d.CreatedAt,
	}
}

type assignmentResponse struct {
	ID              string `json:"id"`
	ManagerUserID   string `json:"manager_user_id"`
	ManagerMemberID string `json:"manager_member_id,omitempty"`
	Type            string `json:"type"`
	PeriodLabel     string `json:"period_label,omitempty"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	TotalDays       int    `json:"total_days"`
	CreatedAt       int64  `json:"created_at"`
}

func toAssignmentResponse(a *models.ManagerAssignment) assignmentResponse {
	return assignmentResponse{
		ID:              a.ID,
		ManagerUserID:   a.ManagerUserID,
		ManagerMemberID: a.ManagerMemberID,
		Type:            string(a.Type),
		PeriodLabel:     a.PeriodLabel,
		StartDate:       a.StartDate.Format(dateLayout),
		EndDate:         a.EndDate.Format(dateLayout),
		TotalDays:       a.TotalDays(),
		CreatedAt:       a.CreatedAt,
	}
}

type messResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Currency         string  `json:"currency"`
	IncludeBreakfast bool    `json:"include_breakfast"`
	BreakfastWeight  float64 `json:"breakfast_weight"`
}

func toMessResponse(m *models.Mess) messResponse {
	return messResponse{
		ID:               m.ID,
		Name:             m.Name,
		Currency:         m.Currency,
		IncludeBreakfast: m.IncludeBreakfast,
		BreakfastWeight:  m.BreakfastWeight,
	}
}
