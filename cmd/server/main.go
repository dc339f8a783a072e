package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spendtrack/internal/config"
	"spendtrack/internal/database"
	"spendtrack/internal/handlers"
	"spendtrack/internal/middleware"
	"spendtrack/internal/repositories"
	"spendtrack/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// A missing .env file is normal outside local development
		_ = err
	}

	logger := newLogger()
	slog.SetDefault(logger)

	cfg := config.Load()

	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	sqlDB, err := db.DB.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	if err := database.RunMigrationsIfEnabled(sqlDB); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	e := buildServer(cfg, db, logger)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("starting server", "addr", addr, "environment", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

// buildServer wires repositories, services, handlers, and routes
func buildServer(cfg *config.Config, db *database.DB, logger *slog.Logger) *echo.Echo {
	// Repositories
	expenseRepo := repositories.NewExpenseRepository(db.DB)
	budgetRepo := repositories.NewBudgetRepository(db.DB)
	loanRepo := repositories.NewLoanRepository(db.DB)
	invoiceRepo := repositories.NewInvoiceRepository(db.DB)
	personRepo := repositories.NewPersonRepository(db.DB)
	methodRepo := repositories.NewPaymentMethodRepository(db.DB)

	// Services
	metrics := services.NewPrometheusMetrics()
	dismissals := services.NewDismissalStore()

	sufficiencyService := services.NewSufficiencyService(expenseRepo, logger)
	patternService := services.NewPatternService(expenseRepo, cfg.Analytics, logger)
	anomalyService := services.NewAnomalyService(expenseRepo, dismissals, cfg.Analytics, logger)
	predictionService := services.NewPredictionService(expenseRepo, sufficiencyService, logger)

	expenseService := services.NewExpenseService(expenseRepo, methodRepo, metrics, logger)
	budgetService := services.NewBudgetService(budgetRepo, expenseRepo, logger)
	loanService := services.NewLoanService(loanRepo, logger)
	invoiceService := services.NewInvoiceService(invoiceRepo, personRepo, logger)
	personService := services.NewPersonService(personRepo, logger)
	methodService := services.NewPaymentMethodService(methodRepo, logger)

	tokenService := services.NewTokenService(&cfg.JWT)
	passwordService := services.NewPasswordService(cfg.Auth.BCryptCost)
	authService := services.NewAuthService(cfg.Auth, tokenService, passwordService, metrics, logger)

	// Handlers
	healthHandler := handlers.NewHealthCheckHandler(db.DB)
	authHandler := handlers.NewAuthHandler(authService)
	analyticsHandler := handlers.NewAnalyticsHandler(
		sufficiencyService, patternService, anomalyService, predictionService, metrics)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	loanHandler := handlers.NewLoanHandler(loanService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	personHandler := handlers.NewPersonHandler(personService)
	methodHandler := handlers.NewPaymentMethodHandler(methodService)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(requestLogger(logger))

	// Public endpoints
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	// Everything else requires the owner token
	protected := api.Group("", middleware.RequireAuth(tokenService))

	analytics := protected.Group("/analytics")
	analytics.GET("/sufficiency", analyticsHandler.GetDataSufficiency)
	analytics.GET("/patterns/day-of-week", analyticsHandler.GetDayOfWeekPatterns)
	analytics.GET("/patterns/seasonal", analyticsHandler.GetSeasonalAnalysis)
	analytics.GET("/patterns/recurring", analyticsHandler.GetRecurringPatterns)
	analytics.GET("/baseline/:category", analyticsHandler.GetCategoryBaseline)
	analytics.GET("/anomalies", analyticsHandler.DetectAnomalies)
	analytics.POST("/anomalies/dismiss", analyticsHandler.DismissAnomaly)
	analytics.DELETE("/anomalies/dismissals", analyticsHandler.ClearDismissedAnomalies)
	analytics.GET("/predictions/:year/:month", analyticsHandler.GetMonthEndPrediction)
	analytics.GET("/comparisons/:year/:month", analyticsHandler.GetHistoricalComparison)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.GET("/progress", budgetHandler.GetBudgetProgress)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	loans := protected.Group("/loans")
	loans.POST("", loanHandler.CreateLoan)
	loans.GET("", loanHandler.ListLoans)
	loans.GET("/:id", loanHandler.GetLoan)
	loans.GET("/:id/schedule", loanHandler.GetAmortizationSchedule)
	loans.GET("/:id/balance", loanHandler.GetLoanBalance)
	loans.DELETE("/:id", loanHandler.DeleteLoan)

	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceHandler.CreateInvoice)
	invoices.GET("", invoiceHandler.ListInvoices)
	invoices.GET("/:id", invoiceHandler.GetInvoice)
	invoices.PUT("/:id/status", invoiceHandler.UpdateInvoiceStatus)
	invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)

	people := protected.Group("/people")
	people.POST("", personHandler.CreatePerson)
	people.GET("", personHandler.ListPeople)
	people.GET("/:id", personHandler.GetPerson)
	people.DELETE("/:id", personHandler.DeletePerson)

	methods := protected.Group("/payment-methods")
	methods.POST("", methodHandler.CreatePaymentMethod)
	methods.GET("", methodHandler.ListPaymentMethods)
	methods.GET("/:id", methodHandler.GetPaymentMethod)
	methods.DELETE("/:id", methodHandler.DeletePaymentMethod)

	if cfg.IsDevelopment() {
		devHandler := handlers.NewDevHandler(services.NewLedgerSeeder(expenseRepo, logger))
		protected.POST("/dev/seed", devHandler.SeedExpenses)
	}

	return e
}

// newLogger builds the process-wide structured logger. LOG_LEVEL and
// LOG_FORMAT control verbosity and output shape.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if os.Getenv("LOG_FORMAT") == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// requestLogger logs one line per request with latency and trace ID
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"trace_id", middleware.GetTraceID(c),
			)
			return err
		}
	}
}
