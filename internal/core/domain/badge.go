package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BadgeMetric names a value a badge requirement is measured against.
type BadgeMetric string

const (
	MetricPoints        BadgeMetric = "points"
	MetricStreak        BadgeMetric = "streak"
	MetricLevel         BadgeMetric = "level"
	MetricExpenseCount  BadgeMetric = "expense_count"
	MetricCategoryCount BadgeMetric = "category_count"
	MetricBudgetCount   BadgeMetric = "budget_count"
	MetricTotalTracked  BadgeMetric = "total_tracked"
)

// IsValid reports whether m is a metric BadgeMetrics can produce.
func (m BadgeMetric) IsValid() bool {
	switch m {
	case MetricPoints, MetricStreak, MetricLevel, MetricExpenseCount,
		MetricCategoryCount, MetricBudgetCount, MetricTotalTracked:
		return true
	}
	return false
}

// BadgeRequirement is one threshold a metric must reach.
type BadgeRequirement struct {
	Metric    BadgeMetric     `json:"metric"`
	Threshold decimal.Decimal `json:"threshold"`
}

// BadgeDefinition is one row of the static achievement catalog.
type BadgeDefinition struct {
	ID              string
	Name            string
	Description     string
	Icon            string
	IconColor       string
	BackgroundColor string
	Condition       string
	Requirements    []BadgeRequirement
	TrackProgress   bool
}

// Validate checks that the definition can be evaluated.
func (d BadgeDefinition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("badge definition missing id")
	}
	if len(d.Requirements) == 0 {
		return fmt.Errorf("badge %s has no requirements", d.ID)
	}
	for _, r := range d.Requirements {
		if !r.Metric.IsValid() {
			return fmt.Errorf("badge %s uses unknown metric %q", d.ID, r.Metric)
		}
		if !r.Threshold.IsPositive() {
			return fmt.Errorf("badge %s metric %s needs a positive threshold", d.ID, r.Metric)
		}
	}
	return nil
}

// Locked returns the initial, locked badge for this definition.
func (d BadgeDefinition) Locked() Badge {
	b := Badge{
		ID:              d.ID,
		Name:            d.Name,
		Description:     d.Description,
		Icon:            d.Icon,
		IconColor:       d.IconColor,
		BackgroundColor: d.BackgroundColor,
		Condition:       d.Condition,
	}
	if d.TrackProgress {
		zero := 0
		b.Progress = &zero
	}
	return b
}

// Badge is the persisted snapshot of one achievement for a user.
type Badge struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Icon            string `json:"icon"`
	IconColor       string `json:"iconColor"`
	BackgroundColor string `json:"backgroundColor"`
	Condition       string `json:"condition"`
	Unlocked        bool   `json:"unlocked"`
	Progress        *int   `json:"progress,omitempty"`
}

// BadgeMetrics is everything a badge predicate may look at.
type BadgeMetrics struct {
	Points        int
	Streak        int
	Level         int
	ExpenseCount  int
	CategoryCount int
	BudgetCount   int
	TotalTracked  decimal.Decimal
}

// NewBadgeMetrics derives the metrics from a game state, the expense list and the number of budgets.
func NewBadgeMetrics(state GameState, expenses []Expense, budgetCount int) BadgeMetrics {
	return BadgeMetrics{
		Points:        state.Points,
		Streak:        state.Streak,
		Level:         state.Level(),
		ExpenseCount:  len(expenses),
		CategoryCount: DistinctCategories(expenses),
		BudgetCount:   budgetCount,
		TotalTracked:  TotalAmount(expenses),
	}
}

// Value returns the current value of metric m.
func (m BadgeMetrics) Value(metric BadgeMetric) decimal.Decimal {
	switch metric {
	case MetricPoints:
		return decimal.NewFromInt(int64(m.Points))
	case MetricStreak:
		return decimal.NewFromInt(int64(m.Streak))
	case MetricLevel:
		return decimal.NewFromInt(int64(m.Level))
	case MetricExpenseCount:
		return decimal.NewFromInt(int64(m.ExpenseCount))
	case MetricCategoryCount:
		return decimal.NewFromInt(int64(m.CategoryCount))
	case MetricBudgetCount:
		return decimal.NewFromInt(int64(m.BudgetCount))
	case MetricTotalTracked:
		return m.TotalTracked
	}
	return decimal.Zero
}

// Satisfied reports whether every requirement of d holds for m.
func (d BadgeDefinition) Satisfied(m BadgeMetrics) bool {
	for _, r := range d.Requirements {
		if m.Value(r.Metric).LessThan(r.Threshold) {
			return false
		}
	}
	return true
}

// ProgressPercent returns min(100, floor(100*value/threshold)) for the first requirement.
func (d BadgeDefinition) ProgressPercent(m BadgeMetrics) int {
	r := d.Requirements[0]
	pct := m.Value(r.Metric).Mul(decimal.NewFromInt(100)).Div(r.Threshold).Floor().IntPart()
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return int(pct)
}

// EvaluateBadges re-checks current against catalog and returns the updated list in catalog order.
//
// Badges already unlocked are returned unchanged. Badges missing from current
// start locked. Badges not in catalog are dropped. The function is pure, so
// evaluating its own output again with the same metrics returns the same list.
func EvaluateBadges(catalog []BadgeDefinition, current []Badge, m BadgeMetrics) []Badge {
	byID := make(map[string]Badge, len(current))
	for _, b := range current {
		byID[b.ID] = b
	}

	out := make([]Badge, 0, len(catalog))
	for _, def := range catalog {
		b, ok := byID[def.ID]
		if !ok {
			b = def.Locked()
		}
		if b.Unlocked {
			out = append(out, b)
			continue
		}
		if def.Satisfied(m) {
			b.Unlocked = true
			b.Progress = nil
		} else if def.TrackProgress {
			pct := def.ProgressPercent(m)
			b.Progress = &pct
		} else {
			b.Progress = nil
		}
		out = append(out, b)
	}
	return out
}

// NewlyUnlocked lists badges unlocked in after but not in before.
func NewlyUnlocked(before, after []Badge) []Badge {
	was := make(map[string]bool, len(before))
	for _, b := range before {
		was[b.ID] = b.Unlocked
	}
	var fresh []Badge
	for _, b := range after {
		if b.Unlocked && !was[b.ID] {
			fresh = append(fresh, b)
		}
	}
	return fresh
}

// BadgeEvaluation is the outcome of one badge re-evaluation.
type BadgeEvaluation struct {
	Badges        []Badge
	NewlyUnlocked []Badge
}
