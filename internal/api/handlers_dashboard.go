package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"messmate/internal/calculator"
)

type dashboardSummary struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	Currency       string  `json:"currency"`
	TotalMeals     float64 `json:"total_meals"`
	TotalExpense   float64 `json:"total_expense"`
	TotalCollected float64 `json:"total_collected"`
	MealRate       float64 `json:"meal_rate"`
	MessBalance    float64 `json:"mess_balance"`
	ActiveMembers  int     `json:"active_members"`
}

type dashboardMemberRow struct {
	MemberID  string  `json:"member_id"`
	Name      string  `json:"name"`
	Meals     float64 `json:"meals"`
	MealCost  float64 `json:"meal_cost"`
	Deposited float64 `json:"deposited"`
	Net       float64 `json:"net"`
	Status    string  `json:"status"`
}

type dashboardManagerStat struct {
	ManagerID       string `json:"manager_id"`
	Name            string `json:"name"`
	TotalDays       int    `json:"total_days"`
	AssignmentCount int    `json:"assignment_count"`
	LastStart       string `json:"last_start"`
	LastEnd         string `json:"last_end"`
}

type dashboardResponse struct {
	Mess         messResponse           `json:"mess"`
	Summary      dashboardSummary       `json:"summary"`
	Members      []dashboardMemberRow   `json:"members"`
	ManagerStats []dashboardManagerStat `json:"manager_stats"`
}

// handleDashboard serves the month dashboard. Defaults to the current
// month when year/month are absent.
func (s *Server) handleDashboard(c echo.Context) error {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if raw := c.QueryParam("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
		}
		year = v
	}
	if raw := c.QueryParam("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
		}
		month = v
	}

	dashboard, mess, err := s.messSvc.Dashboard(c.Request().Context(), userID(c), year, month)
	if err != nil {
		return httpError(err)
	}

	resp := dashboardResponse{
		Mess: toMessResponse(mess),
		Summary: dashboardSummary{
			Year:           year,
			Month:          month,
			Currency:       mess.Currency,
			TotalMeals:     dashboard.Summary.TotalMeals,
			TotalExpense:   dashboard.Summary.TotalExpense,
			TotalCollected: dashboard.Summary.TotalCollected,
			MealRate:       dashboard.Summary.MealRate,
			MessBalance:    dashboard.Summary.MessBalance,
			ActiveMembers:  dashboard.Summary.ActiveMembers,
		},
		Members:      make([]dashboardMemberRow, len(dashboard.Members)),
		ManagerStats: make([]dashboardManagerStat, len(dashboard.ManagerStats)),
	}

	for i, row := range dashboard.Members {
		resp.Members[i] = dashboardMemberRow{
			MemberID:  row.MemberID,
			Name:      row.Name,
			Meals:     row.Meals,
			MealCost:  row.MealCost,
			Deposited: row.Deposited,
			Net:       row.Net,
			Status:    row.Status,
		}
	}
	for i, stat := range dashboard.ManagerStats {
		resp.ManagerStats[i] = toManagerStat(stat)
	}

	return c.JSON(http.StatusOK, resp)
}

func toManagerStat(stat calculator.ManagerStat) dashboardManagerStat {
	return dashboardManagerStat{
		ManagerID:       stat.ManagerID,
		Name:            stat.Name,
		TotalDays:       stat.TotalDays,
		AssignmentCount: stat.AssignmentCount,
		LastStart:       stat.LastStart.Format(dateLayout),
		LastEnd:         stat.LastEnd.Format(dateLayout),
	}
}
