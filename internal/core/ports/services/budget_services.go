package services

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
)

// BudgetReaderSvc defines read operations for budget data
type BudgetReaderSvc interface {
	// ListBudgets returns every budget with its spending in the current month.
	ListBudgets(ctx context.Context, userID string) ([]domain.BudgetStatus, error)
}

// BudgetWriterSvc defines write operations for budget data
type BudgetWriterSvc interface {
	// CreateBudget stores a new budget and re-evaluates badges.
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.BudgetStatus, *domain.BadgeEvaluation, error)
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
