package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// ListExpenses returns every expense of the user, newest first.
	// Missing or unreadable data yields an empty list.
	ListExpenses(ctx context.Context, userID string) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense prepends expense to the user's stored sequence.
	SaveExpense(ctx context.Context, userID string, expense domain.Expense) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
