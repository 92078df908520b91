package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"messmate/internal/models"
	"messmate/internal/service"
)

func (s *Server) handleListMembers(c echo.Context) error {
	members, err := s.memberSvc.List(c.Request().Context(), userID(c))
	if err != nil {
		return httpError(err)
	}

	resp := make([]memberResponse, len(members))
	for i, m := range members {
		resp[i] = toMemberResponse(m)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"members": resp})
}

type addMemberRequest struct {
	Name           string `json:"name" validate:"required,max=120"`
	Phone          string `json:"phone" validate:"max=50"`
	UserID         string `json:"user_id"`
	DefaultPattern string `json:"default_pattern"`
}

func (s *Server) handleAddMember(c echo.Context) error {
	var req addMemberRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	member, err := s.memberSvc.Add(c.Request().Context(), userID(c), service.MemberInput{
		Name:           req.Name,
		Phone:          req.Phone,
		UserID:         req.UserID,
		DefaultPattern: models.MealPattern(req.DefaultPattern),
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, toMemberResponse(member))
}

type mealHistoryResponse struct {
	Date      string  `json:"date"`
	Breakfast bool    `json:"breakfast"`
	Lunch     bool    `json:"lunch"`
	Dinner    bool    `json:"dinner"`
	Extra     float64 `json:"extra"`
	Units     float64 `json:"units"`
}

type memberDetailResponse struct {
	Member        memberResponse        `json:"member"`
	Meals         []mealHistoryResponse `json:"meals"`
	Deposits      []depositResponse     `json:"deposits"`
	TotalMeals    float64               `json:"total_meals"`
	TotalDeposits float64               `json:"total_deposits"`
}

func (s *Server) handleMemberDetail(c echo.Context) error {
	detail, err := s.memberSvc.Detail(c.Request().Context(), userID(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	resp := memberDetailResponse{
		Member:        toMemberResponse(detail.Member),
		Meals:         make([]mealHistoryResponse, len(detail.Meals)),
		Deposits:      make([]depositResponse, len(detail.Deposits)),
		TotalMeals:    detail.TotalMeals,
		TotalDeposits: detail.TotalDeposits,
	}
	for i, row := range detail.Meals {
		resp.Meals[i] = mealHistoryResponse{
			Date:      row.Meal.Date.Format(dateLayout),
			Breakfast: row.Meal.Breakfast,
			Lunch:     row.Meal.Lunch,
			Dinner:    row.Meal.Dinner,
			Extra:     row.Meal.Extra,
			Units:     row.Units,
		}
	}
	for i, d := range detail.Deposits {
		resp.Deposits[i] = toDepositResponse(d)
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeactivateMember(c echo.Context) error {
	if err := s.memberSvc.Deactivate(c.Request().Context(), userID(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
