package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"messmate/internal/service"
)

type sheetEntryResponse struct {
	MemberID    string  `json:"member_id"`
	MemberName  string  `json:"member_name"`
	Breakfast   bool    `json:"breakfast"`
	Lunch       bool    `json:"lunch"`
	Dinner      bool    `json:"dinner"`
	Extra       float64 `json:"extra"`
	FromDefault bool    `json:"from_default"`
}

type daySheetResponse struct {
	Date       string               `json:"date"`
	Editable   bool                 `json:"editable"`
	Assignment *assignmentResponse  `json:"assignment,omitempty"`
	Entries    []sheetEntryResponse `json:"entries"`
}

func (s *Server) handleGetDaySheet(c echo.Context) error {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		return err
	}

	sheet, err := s.mealSvc.GetDaySheet(c.Request().Context(), userID(c), date)
	if err != nil {
		return httpError(err)
	}

	resp := daySheetResponse{
		Date:     sheet.Date.Format(dateLayout),
		Editable: sheet.Editable,
		Entries:  make([]sheetEntryResponse, len(sheet.Entries)),
	}
	if sheet.Assignment != nil {
		a := toAssignmentResponse(sheet.Assignment)
		resp.Assignment = &a
	}
	for i, e := range sheet.Entries {
		resp.Entries[i] = sheetEntryResponse{
			MemberID:    e.MemberID,
			MemberName:  e.MemberName,
			Breakfast:   e.Breakfast,
			Lunch:       e.Lunch,
			Dinner:      e.Dinner,
			Extra:       e.Extra,
			FromDefault: e.FromDefault,
		}
	}

	return c.JSON(http.StatusOK, resp)
}

type saveEntryRequest struct {
	MemberID  string  `json:"member_id" validate:"required"`
	Breakfast bool    `json:"breakfast"`
	Lunch     bool    `json:"lunch"`
	Dinner    bool    `json:"dinner"`
	Extra     float64 `json:"extra" validate:"gte=0"`
}

type saveDaySheetRequest struct {
	Date    string             `json:"date" validate:"required"`
	Entries []saveEntryRequest `json:"entries" validate:"required,dive"`
}

func (s *Server) handleSaveDaySheet(c echo.Context) error {
	var req saveDaySheetRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date: want YYYY-MM-DD")
	}

	entries := make([]service.SaveEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = service.SaveEntry{
			MemberID:  e.MemberID,
			Breakfast: e.Breakfast,
			Lunch:     e.Lunch,
			Dinner:    e.Dinner,
			Extra:     e.Extra,
		}
	}

	if err := s.mealSvc.SaveDaySheet(c.Request().Context(), userID(c), date, entries); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

type dayTotalsResponse struct {
	Date           string  `json:"date"`
	MemberCount    int     `json:"member_count"`
	BreakfastCount int     `json:"breakfast_count"`
	LunchCount     int     `json:"lunch_count"`
	DinnerCount    int     `json:"dinner_count"`
	ExtraTotal     float64 `json:"extra_total"`
	MealUnits      float64 `json:"meal_units"`
}

func (s *Server) handleRecentMeals(c echo.Context) error {
	date, err := parseDateQuery(c, "date")
	if err != nil {
		return err
	}

	days, err := s.mealSvc.RecentDays(c.Request().Context(), userID(c), date)
	if err != nil {
		return httpError(err)
	}

	resp := make([]dayTotalsResponse, len(days))
	for i, d := range days {
		resp[i] = dayTotalsResponse{
			Date:           d.Date.Format(dateLayout),
			MemberCount:    d.MemberCount,
			BreakfastCount: d.BreakfastCount,
			LunchCount:     d.LunchCount,
			DinnerCount:    d.DinnerCount,
			ExtraTotal:     d.ExtraTotal,
			MealUnits:      d.MealUnits,
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"days": resp})
}
