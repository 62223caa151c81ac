package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RawAmount is the amount exactly as the client typed it.
// It accepts a JSON string or a JSON number so the service can reject bad input with its own message.
type RawAmount string

func (a *RawAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		*a = RawAmount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or a number: %w", err)
	}
	*a = RawAmount(n.String())
	return nil
}

// CreateExpenseRequest defines the data needed to record a new expense.
// Fields are validated by the expense service, which owns the user-facing messages.
type CreateExpenseRequest struct {
	Amount      RawAmount `json:"amount" swaggertype:"string" example:"12.50"`
	Description string    `json:"description" example:"Lunch"`
	Category    string    `json:"category" example:"Food"`
}

// ListExpensesParams defines the query parameters of the expense listing.
type ListExpensesParams struct {
	Category  string `form:"category"`
	Search    string `form:"search"`
	Sort      string `form:"sort,default=newest" binding:"omitempty,oneof=newest oldest highest lowest"`
	Limit     int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
	Description string          `json:"description"`
	Category    domain.Category `json:"category"`
	Date        string          `json:"date"`
}

// ListExpensesResponse is one page of expenses.
type ListExpensesResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// RecordExpenseResponse is returned after an expense was stored.
// Warnings lists follow-up steps (progress, badges) that failed without undoing the expense.
type RecordExpenseResponse struct {
	Expense       ExpenseResponse          `json:"expense"`
	Progress      *ProgressOutcomeResponse `json:"progress,omitempty"`
	NewlyUnlocked []BadgeResponse          `json:"newlyUnlocked"`
	Warnings      []string                 `json:"warnings,omitempty"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date.String(),
	}
}

// ToExpenseResponses converts a slice of domain.Expense to []ExpenseResponse.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}

// ToListExpensesResponse converts a domain.ExpensePage to ListExpensesResponse DTO.
func ToListExpensesResponse(page *domain.ExpensePage) ListExpensesResponse {
	resp := ListExpensesResponse{Expenses: ToExpenseResponses(page.Expenses)}
	if page.NextToken != "" {
		token := page.NextToken
		resp.NextToken = &token
	}
	return resp
}

// ToRecordExpenseResponse converts a domain.ExpenseRecordResult to RecordExpenseResponse DTO.
func ToRecordExpenseResponse(r *domain.ExpenseRecordResult) RecordExpenseResponse {
	resp := RecordExpenseResponse{
		Expense:       ToExpenseResponse(&r.Expense),
		NewlyUnlocked: ToBadgeResponses(r.NewlyUnlocked),
		Warnings:      r.Warnings,
	}
	if r.Progress != nil {
		p := ToProgressOutcomeResponse(r.Progress)
		resp.Progress = &p
	}
	return resp
}
