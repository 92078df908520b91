// Package api exposes the application over a JSON REST API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"messmate/internal/auth"
	"messmate/internal/service"
)

// Server wires the services to HTTP routes.
type Server struct {
	echo       *echo.Echo
	jwtManager *auth.JWTManager
	logger     *slog.Logger

	authSvc       *service.AuthService
	messSvc       *service.MessService
	mealSvc       *service.MealService
	ledgerSvc     *service.LedgerService
	memberSvc     *service.MemberService
	assignmentSvc *service.AssignmentService
}

// Services bundles the constructor dependencies.
type Services struct {
	Auth        *service.AuthService
	Mess        *service.MessService
	Meals       *service.MealService
	Ledger      *service.LedgerService
	Members     *service.MemberService
	Assignments *service.AssignmentService
}

// payloadValidator adapts go-playground/validator to echo's Validator.
type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// NewServer builds the echo application with all routes registered.
func NewServer(jwtManager *auth.JWTManager, svcs Services, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &payloadValidator{validate: validator.New()}

	s := &Server{
		echo:          e,
		jwtManager:    jwtManager,
		logger:        logger,
		authSvc:       svcs.Auth,
		messSvc:       svcs.Mess,
		mealSvc:       svcs.Meals,
		ledgerSvc:     svcs.Ledger,
		memberSvc:     svcs.Members,
		assignmentSvc: svcs.Assignments,
	}

	e.Use(middleware.Recover())
	e.Use(s.requestLogger)
	e.Use(metricsMiddleware)

	e.GET("/healthz", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", s.handleRegister)
	authGroup.POST("/login", s.handleLogin)
	authGroup.GET("/me", s.handleMe, s.requireAuth)

	secured := v1.Group("", s.requireAuth)
	secured.GET("/dashboard", s.handleDashboard)

	secured.GET("/meals", s.handleGetDaySheet)
	secured.PUT("/meals", s.handleSaveDaySheet)
	secured.GET("/meals/recent", s.handleRecentMeals)

	secured.GET("/expenses", s.handleListExpenses)
	secured.POST("/expenses", s.handleAddExpense)
	secured.DELETE("/expenses/:id", s.handleDeleteExpense)

	secured.GET("/deposits", s.handleListDeposits)
	secured.POST("/deposits", s.handleAddDeposit)
	secured.DELETE("/deposits/:id", s.handleDeleteDeposit)

	secured.GET("/members", s.handleListMembers)
	secured.POST("/members", s.handleAddMember)
	secured.GET("/members/:id", s.handleMemberDetail)
	secured.DELETE("/members/:id", s.handleDeactivateMember)

	secured.GET("/assignments", s.handleListAssignments)
	secured.POST("/assignments", s.handleCreateAssignment)

	secured.GET("/settings", s.handleGetSettings)
	secured.PUT("/settings", s.handleUpdateSettings)

	return s
}

// Start begins serving on addr and blocks until shutdown.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Handler exposes the underlying http.Handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
