package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"messmate/internal/service"
)

type settingsResponse struct {
	Mess messResponse `json:"mess"`
	Role string       `json:"role"`
}

func (s *Server) handleGetSettings(c echo.Context) error {
	mess, role, err := s.messSvc.GetSettings(c.Request().Context(), userID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, settingsResponse{
		Mess: toMessResponse(mess),
		Role: string(role),
	})
}

type updateSettingsRequest struct {
	Name             string  `json:"name" validate:"max=120"`
	Currency         string  `json:"currency" validate:"max=10"`
	IncludeBreakfast bool    `json:"include_breakfast"`
	BreakfastWeight  float64 `json:"breakfast_weight" validate:"gte=0,lte=2"`
}

func (s *Server) handleUpdateSettings(c echo.Context) error {
	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	mess, err := s.messSvc.UpdateSettings(c.Request().Context(), userID(c), service.SettingsUpdate{
		Name:             req.Name,
		Currency:         req.Currency,
		IncludeBreakfast: req.IncludeBreakfast,
		BreakfastWeight:  req.BreakfastWeight,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, toMessResponse(mess))
}
