package services

import (
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/platform/config"
	"github.com/SscSPs/expense_tracker_app/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, posthogClient *utils.PosthogClientWrapper) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	notifier := NewProgressNotifier(posthogClient)

	// record-expense, create-budget and first-visit badge setup share one lock per user
	locks := newUserLocks()

	container.Achievement = NewAchievementService(repos,
		WithAchievementNotifier(notifier),
		withAchievementUserLocks(locks),
	)
	container.Progress = NewProgressService(repos.GameStateRepo, repos.ExpenseRepo, WithProgressNotifier(notifier))

	container.Expense = NewExpenseService(
		repos.ExpenseRepo,
		WithProgressService(container.Progress),
		WithAchievementService(container.Achievement),
		WithLocation(cfg.Location),
		withExpenseUserLocks(locks),
	)

	container.Budget = NewBudgetService(
		repos.BudgetRepo,
		repos.ExpenseRepo,
		WithBudgetAchievements(container.Achievement),
		WithBudgetLocation(cfg.Location),
		withBudgetUserLocks(locks),
	)

	container.Auth = NewAuthService(cfg, repos.VerificationRepo, repos.SessionRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ExpenseSvcFacade     = (*expenseService)(nil)
	_ portssvc.ProgressSvcFacade    = (*progressService)(nil)
	_ portssvc.AchievementSvcFacade = (*achievementService)(nil)
	_ portssvc.BudgetSvcFacade      = (*budgetService)(nil)
	_ portssvc.AuthSvcFacade        = (*authService)(nil)
	_ portssvc.ProgressNotifier     = (*progressNotifier)(nil)
)
