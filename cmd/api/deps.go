package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"expensemanager/internal/domain/budget"
	"expensemanager/internal/domain/expense"
	"expensemanager/internal/domain/reporting"
	"expensemanager/internal/domain/user"
	"expensemanager/internal/infrastructure/postgres"
	httphandlers "expensemanager/internal/interfaces/http"
	"expensemanager/internal/shared/auth"
	"expensemanager/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler    *httphandlers.AuthHandler
	UserHandler    *httphandlers.UserHandler
	ExpenseHandler *httphandlers.ExpenseHandler
	BudgetHandler  *httphandlers.BudgetHandler
	ReportHandler  *httphandlers.ReportHandler
	HealthHandler  *httphandlers.HealthHandler

	// Auth
	JWT *auth.JWT
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*Dependencies, error) {
	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(cfg.Database.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info("Database migrations applied")
	}

	db, err := postgres.New(ctx, cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"host": cfg.Database.Host,
		"name": cfg.Database.DBName,
	}).Info("Connected to database")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)
	budgetRepo := postgres.NewBudgetRepository(db)

	// Domain services
	userService := user.NewService(userRepo)
	expenseService := expense.NewService(expenseRepo)
	budgetService := budget.NewService(budgetRepo)
	reportService := reporting.NewService(expenseRepo, budgetRepo)

	jwt := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	return &Dependencies{
		DB:             db,
		AuthHandler:    httphandlers.NewAuthHandler(userService, jwt, cfg.JWT.TTL, log),
		UserHandler:    httphandlers.NewUserHandler(userService, log),
		ExpenseHandler: httphandlers.NewExpenseHandler(expenseService, log),
		BudgetHandler:  httphandlers.NewBudgetHandler(budgetService, log),
		ReportHandler:  httphandlers.NewReportHandler(reportService, log),
		HealthHandler:  httphandlers.NewHealthHandler(db, log),
		JWT:            jwt,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
