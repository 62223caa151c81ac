package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
)

// achievementService implements the AchievementSvcFacade interface
type achievementService struct {
	BaseService
	catalog       []domain.BadgeDefinition
	badgeRepo     portsrepo.BadgeRepositoryFacade
	gameStateRepo portsrepo.GameStateReader
	expenseRepo   portsrepo.ExpenseReader
	budgetRepo    portsrepo.BudgetReader
	notifier      portssvc.ProgressNotifier
	locks         *userLocks
}

// AchievementServiceOption is a functional option for configuring the achievement service
type AchievementServiceOption func(*achievementService)

// WithBadgeCatalog replaces the built-in catalog.
func WithBadgeCatalog(catalog []domain.BadgeDefinition) AchievementServiceOption {
	return func(s *achievementService) {
		s.catalog = catalog
	}
}

// WithAchievementNotifier sets where badge unlocks are delivered.
func WithAchievementNotifier(n portssvc.ProgressNotifier) AchievementServiceOption {
	return func(s *achievementService) {
		s.notifier = n
	}
}

func withAchievementUserLocks(l *userLocks) AchievementServiceOption {
	return func(s *achievementService) {
		s.locks = l
	}
}

// NewAchievementService creates a new achievement service with the provided options
func NewAchievementService(repos portsrepo.RepositoryProvider, options ...AchievementServiceOption) portssvc.AchievementSvcFacade {
	svc := &achievementService{
		badgeRepo:     repos.BadgeRepo,
		gameStateRepo: repos.GameStateRepo,
		expenseRepo:   repos.ExpenseRepo,
		budgetRepo:    repos.BudgetRepo,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.catalog == nil {
		svc.catalog = MustDefaultBadgeCatalog()
	}
	if svc.locks == nil {
		svc.locks = newUserLocks()
	}
	return svc
}

// Ensure achievementService implements the AchievementSvcFacade interface
var _ portssvc.AchievementSvcFacade = (*achievementService)(nil)

func (s *achievementService) Catalog() []domain.BadgeDefinition {
	out := make([]domain.BadgeDefinition, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *achievementService) ListBadges(ctx context.Context, userID string) ([]domain.Badge, error) {
	badges, found, err := s.badgeRepo.FindBadges(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load badges", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}
	if found {
		return badges, nil
	}

	// first visit: start from a locked catalog, evaluate once and store it.
	// Recording an expense or a budget holds the same lock while it evaluates.
	unlock := s.locks.Lock(userID)
	defer unlock()

	badges, found, err = s.badgeRepo.FindBadges(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load badges", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}
	if found {
		return badges, nil
	}
	s.LogInfo(ctx, "No stored badges, initialising catalog", slog.String("user_id", userID))
	eval, err := s.evaluate(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	return eval.Badges, nil
}

// EvaluateBadges expects the caller to hold the user's lock when it races with other writers.
func (s *achievementService) EvaluateBadges(ctx context.Context, userID string) (*domain.BadgeEvaluation, error) {
	current, _, err := s.badgeRepo.FindBadges(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load badges", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}
	return s.evaluate(ctx, userID, current)
}

func (s *achievementService) RecomputeBadges(ctx context.Context, userID string) (*domain.BadgeEvaluation, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	current, _, err := s.badgeRepo.FindBadges(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load badges", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}

	// rebuild every row from the catalog; only the unlocked flag survives
	fresh := make([]domain.Badge, 0, len(current))
	for _, b := range current {
		if !b.Unlocked {
			continue
		}
		for _, def := range s.catalog {
			if def.ID == b.ID {
				rebuilt := def.Locked()
				rebuilt.Unlocked = true
				rebuilt.Progress = nil
				fresh = append(fresh, rebuilt)
				break
			}
		}
	}

	s.LogInfo(ctx, "Recomputing badges", slog.String("user_id", userID), slog.Int("kept_unlocked", len(fresh)))
	return s.evaluate(ctx, userID, fresh)
}

func (s *achievementService) evaluate(ctx context.Context, userID string, current []domain.Badge) (*domain.BadgeEvaluation, error) {
	metrics, err := s.metrics(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := domain.EvaluateBadges(s.catalog, current, metrics)
	newly := domain.NewlyUnlocked(current, updated)

	if err := s.badgeRepo.SaveBadges(ctx, userID, updated); err != nil {
		s.LogError(ctx, err, "Failed to save badges", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save badges: %w", err)
	}

	for _, b := range newly {
		s.LogInfo(ctx, "Badge unlocked", slog.String("user_id", userID), slog.String("badge_id", b.ID), slog.String("badge", b.Name))
	}
	if s.notifier != nil && len(newly) > 0 {
		s.notifier.NotifyBadgesUnlocked(ctx, userID, newly)
	}
	return &domain.BadgeEvaluation{Badges: updated, NewlyUnlocked: newly}, nil
}

func (s *achievementService) metrics(ctx context.Context, userID string) (domain.BadgeMetrics, error) {
	state, err := s.gameStateRepo.FindGameState(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load game state for badges", slog.String("user_id", userID))
		return domain.BadgeMetrics{}, fmt.Errorf("failed to load game state: %w", err)
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses for badges", slog.String("user_id", userID))
		return domain.BadgeMetrics{}, fmt.Errorf("failed to list expenses: %w", err)
	}
	budgets, err := s.budgetRepo.ListBudgets(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets for badges", slog.String("user_id", userID))
		return domain.BadgeMetrics{}, fmt.Errorf("failed to list budgets: %w", err)
	}
	return domain.NewBadgeMetrics(state, expenses, len(budgets)), nil
}
