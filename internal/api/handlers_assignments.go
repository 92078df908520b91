package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"messmate/internal/service"
)

func (s *Server) handleListAssignments(c echo.Context) error {
	assignments, err := s.assignmentSvc.List(c.Request().Context(), userID(c))
	if err != nil {
		return httpError(err)
	}

	resp := make([]assignmentResponse, len(assignments))
	for i, a := range assignments {
		resp[i] = toAssignmentResponse(a)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"assignments": resp})
}

type createAssignmentRequest struct {
	ManagerUserID   string `json:"manager_user_id" validate:"required"`
	ManagerMemberID string `json:"manager_member_id"`
	PeriodLabel     string `json:"period_label" validate:"max=20"`
	StartDate       string `json:"start_date" validate:"required"`
	EndDate         string `json:"end_date" validate:"required"`
}

func (s *Server) handleCreateAssignment(c echo.Context) error {
	var req createAssignmentRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date: want YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date: want YYYY-MM-DD")
	}

	assignment, err := s.assignmentSvc.Create(c.Request().Context(), userID(c), service.AssignmentInput{
		ManagerUserID:   req.ManagerUserID,
		ManagerMemberID: req.ManagerMemberID,
		PeriodLabel:     req.PeriodLabel,
		StartDate:       start,
		EndDate:         end,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, toAssignmentResponse(assignment))
}
