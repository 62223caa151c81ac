package domain_test

import (
	"testing"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []domain.BadgeDefinition {
	return []domain.BadgeDefinition{
		{
			ID:   "1",
			Name: "First Expense",
			Requirements: []domain.BadgeRequirement{
				{Metric: domain.MetricExpenseCount, Threshold: decimal.NewFromInt(1)},
				{Metric: domain.MetricPoints, Threshold: decimal.NewFromInt(10)},
			},
		},
		{
			ID:            "3",
			Name:          "Streak Starter",
			TrackProgress: true,
			Requirements:  []domain.BadgeRequirement{{Metric: domain.MetricStreak, Threshold: decimal.NewFromInt(3)}},
		},
		{
			ID:            "8",
			Name:          "Money Guru",
			TrackProgress: true,
			Requirements:  []domain.BadgeRequirement{{Metric: domain.MetricTotalTracked, Threshold: decimal.NewFromInt(10000)}},
		},
	}
}

func findBadge(t *testing.T, badges []domain.Badge, id string) domain.Badge {
	t.Helper()
	for _, b := range badges {
		if b.ID == id {
			return b
		}
	}
	require.Failf(t, "badge not found", "id %s", id)
	return domain.Badge{}
}

func TestEvaluateBadges_FromNothing(t *testing.T) {
	m := domain.BadgeMetrics{Points: 10, Streak: 1, Level: 1, ExpenseCount: 1, TotalTracked: decimal.RequireFromString("2500")}

	got := domain.EvaluateBadges(testCatalog(), nil, m)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"1", "3", "8"}, []string{got[0].ID, got[1].ID, got[2].ID})

	first := findBadge(t, got, "1")
	assert.True(t, first.Unlocked)
	assert.Nil(t, first.Progress)

	streak := findBadge(t, got, "3")
	assert.False(t, streak.Unlocked)
	require.NotNil(t, streak.Progress)
	assert.Equal(t, 33, *streak.Progress)

	guru := findBadge(t, got, "8")
	require.NotNil(t, guru.Progress)
	assert.Equal(t, 25, *guru.Progress)
}

func TestEvaluateBadges_FirstExpenseNeedsBothRequirements(t *testing.T) {
	got := domain.EvaluateBadges(testCatalog(), nil, domain.BadgeMetrics{ExpenseCount: 1, Points: 0})
	first := findBadge(t, got, "1")
	assert.False(t, first.Unlocked)
	assert.Nil(t, first.Progress, "badge without tracked progress never reports a percentage")
}

func TestEvaluateBadges_Idempotent(t *testing.T) {
	m := domain.BadgeMetrics{Points: 20, Streak: 2, Level: 1, ExpenseCount: 2, TotalTracked: decimal.NewFromInt(40)}
	once := domain.EvaluateBadges(testCatalog(), nil, m)
	twice := domain.EvaluateBadges(testCatalog(), once, m)
	assert.Equal(t, once, twice)
}

func TestEvaluateBadges_Monotonic(t *testing.T) {
	unlockedAll := domain.EvaluateBadges(testCatalog(), nil, domain.BadgeMetrics{
		Points: 500, Streak: 7, Level: 6, ExpenseCount: 50, TotalTracked: decimal.NewFromInt(20000),
	})
	for _, b := range unlockedAll {
		require.True(t, b.Unlocked, b.ID)
	}

	// the streak broke and nothing else changed; unlocked stays unlocked
	again := domain.EvaluateBadges(testCatalog(), unlockedAll, domain.BadgeMetrics{
		Points: 510, Streak: 1, Level: 6, ExpenseCount: 51, TotalTracked: decimal.NewFromInt(20010),
	})
	for _, b := range again {
		assert.True(t, b.Unlocked, b.ID)
		assert.Nil(t, b.Progress, b.ID)
	}
}

func TestEvaluateBadges_ProgressClamped(t *testing.T) {
	def := domain.BadgeDefinition{
		ID:            "x",
		TrackProgress: true,
		Requirements: []domain.BadgeRequirement{
			{Metric: domain.MetricStreak, Threshold: decimal.NewFromInt(3)},
			{Metric: domain.MetricBudgetCount, Threshold: decimal.NewFromInt(1)},
		},
	}
	// first requirement exceeded, second not met
	got := domain.EvaluateBadges([]domain.BadgeDefinition{def}, nil, domain.BadgeMetrics{Streak: 9})
	require.Len(t, got, 1)
	assert.False(t, got[0].Unlocked)
	require.NotNil(t, got[0].Progress)
	assert.Equal(t, 100, *got[0].Progress)
}

func TestEvaluateBadges_DropsUnknownBadges(t *testing.T) {
	stale := []domain.Badge{{ID: "99", Name: "Retired", Unlocked: true}}
	got := domain.EvaluateBadges(testCatalog(), stale, domain.BadgeMetrics{})
	for _, b := range got {
		assert.NotEqual(t, "99", b.ID)
	}
}

func TestNewlyUnlocked(t *testing.T) {
	before := []domain.Badge{{ID: "1", Unlocked: true}, {ID: "3"}}
	after := []domain.Badge{{ID: "1", Unlocked: true}, {ID: "3", Unlocked: true}, {ID: "8", Unlocked: true}}

	got := domain.NewlyUnlocked(before, after)
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "8", got[1].ID)
}

func TestNewBadgeMetrics(t *testing.T) {
	expenses := []domain.Expense{
		{Amount: decimal.RequireFromString("12.50"), Category: domain.CategoryFood},
		{Amount: decimal.RequireFromString("7.50"), Category: domain.CategoryFood},
		{Amount: decimal.NewFromInt(100), Category: domain.CategoryBills},
	}
	m := domain.NewBadgeMetrics(domain.GameState{Points: 230, Streak: 4}, expenses, 2)

	assert.Equal(t, 230, m.Points)
	assert.Equal(t, 3, m.Level)
	assert.Equal(t, 3, m.ExpenseCount)
	assert.Equal(t, 2, m.CategoryCount)
	assert.Equal(t, 2, m.BudgetCount)
	assert.True(t, decimal.NewFromInt(120).Equal(m.TotalTracked))
}

func TestBadgeDefinition_Validate(t *testing.T) {
	assert.Error(t, domain.BadgeDefinition{}.Validate())
	assert.Error(t, domain.BadgeDefinition{ID: "1"}.Validate())
	assert.Error(t, domain.BadgeDefinition{ID: "1", Requirements: []domain.BadgeRequirement{{Metric: "mood", Threshold: decimal.NewFromInt(1)}}}.Validate())
	assert.Error(t, domain.BadgeDefinition{ID: "1", Requirements: []domain.BadgeRequirement{{Metric: domain.MetricPoints, Threshold: decimal.Zero}}}.Validate())
	assert.NoError(t, testCatalog()[1].Validate())
}

func TestBudget_StatusFor(t *testing.T) {
	b := domain.Budget{Category: domain.CategoryFood, Limit: decimal.NewFromInt(100)}
	expenses := []domain.Expense{
		{Amount: decimal.NewFromInt(60), Category: domain.CategoryFood, Date: day(3)},
		{Amount: decimal.NewFromInt(50), Category: domain.CategoryFood, Date: day(20)},
		{Amount: decimal.NewFromInt(500), Category: domain.CategoryBills, Date: day(3)},
		{Amount: decimal.NewFromInt(70), Category: domain.CategoryFood, Date: domain.NewDate(2024, 2, 28)},
	}

	status := b.StatusFor(expenses, day(25))
	assert.True(t, decimal.NewFromInt(110).Equal(status.Spent))
	assert.True(t, decimal.NewFromInt(-10).Equal(status.Remaining))
	assert.True(t, status.Exceeded)
}
