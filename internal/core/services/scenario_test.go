package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/core/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/repositories/keyvalue"
	"github.com/SscSPs/expense_tracker_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tracker wires the real services over an in-memory store with a movable clock.
type tracker struct {
	store        *memory.KVStore
	now          time.Time
	expenses     portssvc.ExpenseSvcFacade
	progress     portssvc.ProgressSvcFacade
	achievements portssvc.AchievementSvcFacade
	budgets      portssvc.BudgetSvcFacade
}

func newTracker(t *testing.T) *tracker {
	t.Helper()
	tr := &tracker{
		store: memory.NewKVStore(),
		now:   time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return tr.now }
	repos := keyvalue.NewRepositoryProvider(tr.store)

	tr.achievements = services.NewAchievementService(repos)
	tr.progress = services.NewProgressService(repos.GameStateRepo, repos.ExpenseRepo)
	tr.expenses = services.NewExpenseService(repos.ExpenseRepo,
		services.WithProgressService(tr.progress),
		services.WithAchievementService(tr.achievements),
		services.WithClock(clock),
	)
	tr.budgets = services.NewBudgetService(repos.BudgetRepo, repos.ExpenseRepo,
		services.WithBudgetAchievements(tr.achievements),
		services.WithBudgetClock(clock),
	)
	return tr
}

func (tr *tracker) advanceDays(n int) {
	tr.now = tr.now.AddDate(0, 0, n)
}

func (tr *tracker) record(t *testing.T, amount, category string) *domain.ExpenseRecordResult {
	t.Helper()
	res, err := tr.expenses.RecordExpense(context.Background(), "user-1", dto.CreateExpenseRequest{
		Amount:      dto.RawAmount(amount),
		Description: "expense",
		Category:    category,
	})
	require.NoError(t, err)
	require.Empty(t, res.Warnings)
	return res
}

func (tr *tracker) badge(t *testing.T, id string) domain.Badge {
	t.Helper()
	badges, err := tr.achievements.ListBadges(context.Background(), "user-1")
	require.NoError(t, err)
	for _, b := range badges {
		if b.ID == id {
			return b
		}
	}
	require.Failf(t, "badge not found", "id %s", id)
	return domain.Badge{}
}

func TestScenario_FirstExpense(t *testing.T) {
	tr := newTracker(t)
	ctx := context.Background()

	res := tr.record(t, "25", "Food")

	state, err := tr.progress.GetGameState(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, state.Points)
	assert.Equal(t, 1, state.Level())
	assert.Equal(t, 1, state.Streak)

	require.Len(t, res.NewlyUnlocked, 1)
	assert.Equal(t, "First Expense", res.NewlyUnlocked[0].Name)

	badges, err := tr.achievements.ListBadges(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, badges, 8)
	for _, b := range badges[1:] {
		assert.False(t, b.Unlocked, b.Name)
		assert.NotNil(t, b.Progress, b.Name)
	}
	assert.Equal(t, 33, *tr.badge(t, "3").Progress)
	assert.Equal(t, 10, *tr.badge(t, "2").Progress)
	assert.Equal(t, 20, *tr.badge(t, "7").Progress)
}

func TestScenario_FiveConsecutiveDays(t *testing.T) {
	tr := newTracker(t)
	for d := 0; d < 5; d++ {
		if d > 0 {
			tr.advanceDays(1)
		}
		tr.record(t, "10", "Food")
	}

	state, err := tr.progress.GetGameState(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, state.Streak)
	assert.Equal(t, 60, state.Points)
	assert.True(t, tr.badge(t, "3").Unlocked)
	assert.False(t, tr.badge(t, "4").Unlocked)
	assert.Equal(t, 71, *tr.badge(t, "4").Progress)
}

func TestScenario_GapResetsStreak(t *testing.T) {
	tr := newTracker(t)
	tr.record(t, "10", "Food")
	tr.advanceDays(3) // two days skipped
	res := tr.record(t, "10", "Food")

	require.NotNil(t, res.Progress)
	assert.Equal(t, 1, res.Progress.Current.Streak)
	assert.Equal(t, 20, res.Progress.Current.Points)
}

func TestScenario_SameDayKeepsStreak(t *testing.T) {
	tr := newTracker(t)
	tr.record(t, "10", "Food")
	res := tr.record(t, "4", "Transport")

	assert.Equal(t, 1, res.Progress.Current.Streak)
	assert.Equal(t, 20, res.Progress.Current.Points)
}

func TestScenario_InvalidAmountChangesNothing(t *testing.T) {
	tr := newTracker(t)
	ctx := context.Background()

	_, err := tr.expenses.RecordExpense(ctx, "user-1", dto.CreateExpenseRequest{Amount: "abc", Description: "Lunch", Category: "Food"})
	require.Error(t, err)

	assert.Equal(t, 0, tr.store.Len())
	state, err := tr.progress.GetGameState(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.GameState{}, *state)
}

func TestScenario_BudgetMaster(t *testing.T) {
	tr := newTracker(t)
	ctx := context.Background()

	for i, cat := range []string{"Food", "Transport", "Bills"} {
		_, eval, err := tr.budgets.CreateBudget(ctx, "user-1", dto.CreateBudgetRequest{Category: cat, Limit: "100"})
		require.NoError(t, err)
		require.NotNil(t, eval)
		if i < 2 {
			assert.Empty(t, eval.NewlyUnlocked)
		} else {
			require.Len(t, eval.NewlyUnlocked, 1)
			assert.Equal(t, "Budget Master", eval.NewlyUnlocked[0].Name)
		}
	}
	assert.True(t, tr.badge(t, "6").Unlocked)
}

func TestScenario_UnlockedBadgesSurviveStreakLoss(t *testing.T) {
	tr := newTracker(t)
	for d := 0; d < 3; d++ {
		if d > 0 {
			tr.advanceDays(1)
		}
		tr.record(t, "10", "Food")
	}
	require.True(t, tr.badge(t, "3").Unlocked)

	tr.advanceDays(5)
	tr.record(t, "10", "Food")

	assert.True(t, tr.badge(t, "3").Unlocked)
	eval, err := tr.achievements.RecomputeBadges(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, eval.NewlyUnlocked)
	assert.True(t, tr.badge(t, "3").Unlocked)
}
