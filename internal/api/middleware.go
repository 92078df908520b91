package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"messmate/internal/auth"
)

const (
	// ctxUserID is the echo context key for the authenticated user ID.
	ctxUserID = "user_id"
	// ctxEmail is the echo context key for the authenticated email.
	ctxEmail = "email"
)

// userID extracts the authenticated user ID from the request context.
// Returns empty string if not found.
func userID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}

// requireAuth validates the bearer token and stores the user identity
// in the request context.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return httpError(auth.ErrMissingToken)
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return httpError(auth.ErrInvalidToken)
		}

		claims, err := s.jwtManager.Validate(parts[1])
		if err != nil {
			return httpError(err)
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		return next(c)
	}
}

// requestLogger logs every request with its outcome.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		status := c.Response().Status
		attrs := []any{
			"method", req.Method,
			"path", req.URL.Path,
			"status", status,
			"user_id", userID(c),
			"duration_ms", time.Since(start).Milliseconds(),
		}

		switch {
		case status >= 500:
			s.logger.Error("request failed", attrs...)
		case status >= 400:
			s.logger.Warn("request rejected", attrs...)
		default:
			s.logger.Info("request ok", attrs...)
		}

		return nil
	}
}

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messmate_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "messmate_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// metricsMiddleware records request count and latency per route.
// c.Path() is the route template, so path parameters don't explode
// label cardinality.
func metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
			err = nil
		}

		route := c.Path()
		method := c.Request().Method
		requestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
		requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

		return nil
	}
}
