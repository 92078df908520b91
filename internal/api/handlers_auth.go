package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,max=120"`
	Password    string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := s.authSvc.Register(c.Request().Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, sessionResponse{
		User:  toUserResponse(session.User),
		Token: session.Token,
	})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := s.authSvc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, sessionResponse{
		User:  toUserResponse(session.User),
		Token: session.Token,
	})
}

type meResponse struct {
	User   userResponse `json:"user"`
	MessID string       `json:"mess_id,omitempty"`
	Role   string       `json:"role,omitempty"`
}

func (s *Server) handleMe(c echo.Context) error {
	user, membership, err := s.authSvc.CurrentUser(c.Request().Context(), userID(c))
	if err != nil {
		return httpError(err)
	}

	resp := meResponse{User: toUserResponse(user)}
	if membership != nil {
		resp.MessID = membership.MessID
		resp.Role = string(membership.Role)
	}
	return c.JSON(http.StatusOK, resp)
}
