package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	SaveBudget(ctx context.Context, userID string, budget domain.Budget) error
}

// BudgetRepositoryFacade combines all budget repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
