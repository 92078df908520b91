package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"messmate/internal/models"
	"messmate/internal/service"
)

type addExpenseRequest struct {
	Date           string  `json:"date" validate:"required"`
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	Category       string  `json:"category"`
	PaidByMemberID string  `json:"paid_by_member_id"`
	Note           string  `json:"note" validate:"max=255"`
}

func (s *Server) handleAddExpense(c echo.Context) error {
	var req addExpenseRequest
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

	expense, err := s.ledgerSvc.AddExpense(c.Request().Context(), userID(c), service.ExpenseInput{
		Date:           date,
		Amount:         req.Amount,
		Category:       models.ExpenseCategory(req.Category),
		PaidByMemberID: req.PaidByMemberID,
		Note:           req.Note,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

type expenseDayResponse struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

func (s *Server) handleListExpenses(c echo.Context) error {
	days, expenses, err := s.ledgerSvc.RecentExpenseDays(c.Request().Context(), userID(c))
	if err != nil {
		return httpError(err)
	}

	dayResp := make([]expenseDayResponse, len(days))
	for i, d := range days {
		dayResp[i] = expenseDayResponse{Date: d.Date.Format(dateLayout), Total: d.Total}
	}
	rows := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		rows[i] = toExpenseResponse(e)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"days":     dayResp,
		"expenses": rows,
	})
}

func (s *Server) handleDeleteExpense(c echo.Context) error {
	if err := s.ledgerSvc.DeleteExpense(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type addDepositRequest struct {
	MemberID string  `json:"member_id" validate:"required"`
	Date     string  `json:"date" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Method   string  `json:"method" validate:"max=50"`
	Note     string  `json:"note" validate:"max=255"`
}

func (s *Server) handleAddDeposit(c echo.Context) error {
	var req addDepositRequest
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

	deposit, err := s.ledgerSvc.AddDeposit(c.Request().Context(), userID(c), service.DepositInput{
		MemberID: req.MemberID,
		Date:     date,
		Amount:   req.Amount,
		Method:   req.Method,
		Note:     req.Note,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, toDepositResponse(deposit))
}

type depositDayResponse struct {
	Date    string  `json:"date"`
	Total   float64 `json:"total"`
	Members string  `json:"members"`
}

func (s *Server) handleListDeposits(c echo.Context) error {
	days, deposits, err := s.ledgerSvc.RecentDepositDays(c.Request().Context(), userID(c))
	if err != nil {
		return httpError(err)
	}

	dayResp := make([]depositDayResponse, len(days))
	for i, d := range days {
		dayResp[i] = depositDayResponse{
			Date:    d.Date.Format(dateLayout),
			Total:   d.Total,
			Members: d.Members,
		}
	}
	rows := make([]depositResponse, len(deposits))
	for i, d := range deposits {
		rows[i] = toDepositResponse(d)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"days":     dayResp,
		"deposits": rows,
	})
}

func (s *Server) handleDeleteDeposit(c echo.Context) error {
	if err := s.ledgerSvc.DeleteDeposit(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
