package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Registers the generated OpenAPI document with swag.
	_ "github.com/expenser/expense-api/docs"
	"github.com/expenser/expense-api/internal/api/handler"
	"github.com/expenser/expense-api/internal/api/middleware"
	"github.com/expenser/expense-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer needs. They are built in main.
type Deps struct {
	Logger     zerolog.Logger
	Production bool

	Auth     ports.AuthService
	Users    ports.UserService
	Expenses ports.ExpenseService
	Tokens   ports.TokenService
	// UserLookup resolves token subjects for the access guard.
	UserLookup middleware.UserFinder

	// HealthChecks back /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.Check

	// Registerer and Gatherer default to the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger, d.Production)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "expenser",
		Registerer: d.Registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Production)
	userHandler := handler.NewUserHandler(d.Users)
	expenseHandler := handler.NewExpenseHandler(d.Expenses)
	healthHandler := handler.NewHealthHandler(d.HealthChecks)

	requireAuth := middleware.Auth(d.Tokens, d.UserLookup)

	// --- Auth routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)

	// --- Users (authenticated; mutations only on self) ---
	users := e.Group("/users", requireAuth)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update, middleware.SelfOnly("id"))
	users.DELETE("/:id", userHandler.Delete, middleware.SelfOnly("id"))

	// --- Expenses (authenticated, owner-scoped) ---
	expenses := e.Group("/expenses", requireAuth)
	expenses.GET("", expenseHandler.List)
	expenses.POST("", expenseHandler.Create)
	expenses.GET("/:id", expenseHandler.Get)
	expenses.PATCH("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
