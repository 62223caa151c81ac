package services

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// ListExpenses returns one filtered, sorted page of the user's expenses.
	ListExpenses(ctx context.Context, userID string, params dto.ListExpensesParams) (*domain.ExpensePage, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// RecordExpense validates and stores a new expense, then advances the
	// user's progress and re-evaluates badges.
	RecordExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.ExpenseRecordResult, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
