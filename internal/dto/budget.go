package dto

import (
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a monthly budget.
type CreateBudgetRequest struct {
	Category string    `json:"category" example:"Food"`
	Limit    RawAmount `json:"limit" swaggertype:"string" example:"300"`
}

// BudgetResponse defines the data returned for a budget and its current month.
type BudgetResponse struct {
	ID             string          `json:"id"`
	Category       domain.Category `json:"category"`
	Limit          decimal.Decimal `json:"limit" swaggertype:"string"`
	SpentThisMonth decimal.Decimal `json:"spentThisMonth" swaggertype:"string"`
	Remaining      decimal.Decimal `json:"remaining" swaggertype:"string"`
	Exceeded       bool            `json:"exceeded"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// CreateBudgetResponse is returned after a budget was stored.
type CreateBudgetResponse struct {
	Budget        BudgetResponse  `json:"budget"`
	NewlyUnlocked []BadgeResponse `json:"newlyUnlocked"`
}

// ToBudgetResponse converts a domain.BudgetStatus to BudgetResponse DTO.
func ToBudgetResponse(s *domain.BudgetStatus) BudgetResponse {
	return BudgetResponse{
		ID:             s.ID,
		Category:       s.Category,
		Limit:          s.Limit,
		SpentThisMonth: s.Spent,
		Remaining:      s.Remaining,
		Exceeded:       s.Exceeded,
		CreatedAt:      s.CreatedAt,
	}
}

// ToBudgetResponses converts a slice of domain.BudgetStatus to []BudgetResponse.
func ToBudgetResponses(statuses []domain.BudgetStatus) []BudgetResponse {
	responses := make([]BudgetResponse, len(statuses))
	for i := range statuses {
		responses[i] = ToBudgetResponse(&statuses[i])
	}
	return responses
}
