package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a monthly spending limit for one category.
type Budget struct {
	ID        string          `json:"id"`
	Category  Category        `json:"category"`
	Limit     decimal.Decimal `json:"limit"`
	CreatedAt time.Time       `json:"createdAt"`
}

// BudgetStatus is a budget together with its spending in a given month.
type BudgetStatus struct {
	Budget
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Exceeded  bool
}

// StatusFor sums the expenses of b's category that fall in the month of day.
func (b Budget) StatusFor(expenses []Expense, day Date) BudgetStatus {
	spent := decimal.Zero
	for _, e := range expenses {
		if e.Category != b.Category {
			continue
		}
		if e.Date.Year() == day.Year() && e.Date.Month() == day.Month() {
			spent = spent.Add(e.Amount)
		}
	}
	return BudgetStatus{
		Budget:    b,
		Spent:     spent,
		Remaining: b.Limit.Sub(spent),
		Exceeded:  spent.GreaterThan(b.Limit),
	}
}
