package domain

import (
	"github.com/shopspring/decimal"
)

// Category is one of the fixed expense categories offered by the client.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryBills         Category = "Bills"
	CategoryHealth        Category = "Health"
	CategoryEducation     Category = "Education"
	CategoryOther         Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryBills,
	CategoryHealth,
	CategoryEducation,
	CategoryOther,
}

// IsValid reports whether c belongs to the fixed set.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is a single logged spend. It is never mutated after creation.
type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Date        Date            `json:"date"`
}

// DistinctCategories counts how many different categories appear in expenses.
func DistinctCategories(expenses []Expense) int {
	seen := make(map[Category]struct{}, len(Categories))
	for _, e := range expenses {
		seen[e.Category] = struct{}{}
	}
	return len(seen)
}

// TotalAmount sums the amounts of expenses.
func TotalAmount(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ExpensePage is one page of a filtered, sorted expense listing.
type ExpensePage struct {
	Expenses  []Expense
	NextToken string
}

// ExpenseRecordResult reports everything that happened while recording one expense.
// Warnings lists non-fatal failures of the steps after the expense was stored.
type ExpenseRecordResult struct {
	Expense       Expense
	Progress      *ProgressOutcome
	NewlyUnlocked []Badge
	Warnings      []string
}
