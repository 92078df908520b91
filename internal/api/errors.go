package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"messmate/internal/auth"
	"messmate/internal/service"
	"messmate/internal/storage"
)

// httpError maps domain errors to HTTP status codes. Unknown errors
// become opaque 500s so internals don't leak to clients.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, auth.ErrWeakPassword):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrPermissionDenied),
		errors.Is(err, service.ErrDateNotAllowed):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrNoMess),
		errors.Is(err, storage.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, auth.ErrEmailExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
