package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"expensemanager/internal/shared/config"
	"expensemanager/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config, log logrus.FieldLogger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Tracing)

	// Health check
	r.HandleFunc("/health", deps.HealthHandler.HandleHealth).Methods(http.MethodGet)

	// Public auth routes
	r.HandleFunc("/users/create", deps.AuthHandler.HandleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", deps.AuthHandler.HandleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", deps.AuthHandler.HandleLogout).Methods(http.MethodPost)

	// Protected routes
	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.Auth(deps.JWT))

	protected.HandleFunc("/users/detail", deps.UserHandler.HandleMe).Methods(http.MethodGet)

	expenses := deps.ExpenseHandler
	protected.HandleFunc("/expenses", expenses.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/expenses", expenses.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/monthly/{month:[0-9]+}/{year:[0-9]+}", expenses.HandleListByMonth).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/category-wise", expenses.HandleCategoryTotals).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/category/{category}", expenses.HandleListByCategory).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/{id:[0-9]+}", expenses.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/update/{id:[0-9]+}", expenses.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/expenses/delete/{id:[0-9]+}", expenses.HandleDelete).Methods(http.MethodDelete)

	budgets := deps.BudgetHandler
	protected.HandleFunc("/budgets/add", budgets.HandleUpsert).Methods(http.MethodPost)
	protected.HandleFunc("/budgets/monthly/{month:[0-9]+}/{year:[0-9]+}", budgets.HandleListByMonth).Methods(http.MethodGet)
	protected.HandleFunc("/budgets/delete/{id:[0-9]+}", budgets.HandleDelete).Methods(http.MethodDelete)

	reports := deps.ReportHandler
	protected.HandleFunc("/budgets/category-wise/{month:[0-9]+}/{year:[0-9]+}", reports.HandleCategoryBreakdown).Methods(http.MethodGet)
	protected.HandleFunc("/budgets/category-wise-expense-percentage/{month:[0-9]+}/{year:[0-9]+}", reports.HandlePercentageBreakdown).Methods(http.MethodGet)
	protected.HandleFunc("/budgets/overall/{month:[0-9]+}/{year:[0-9]+}", reports.HandleOverallStatus).Methods(http.MethodGet)

	// Apply global middleware
	handler := middleware.CORS(cfg.Server.AllowedHosts)(r)
	handler = middleware.Logging(log)(handler)
	handler = middleware.RequestID(handler)

	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(cfg.Telemetry.ServiceName)(handler)
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Info("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
