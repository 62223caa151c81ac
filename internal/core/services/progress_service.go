package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
)

// recentExpenseCount is how many expenses the dashboard shows.
const recentExpenseCount = 3

// progressService implements the ProgressSvcFacade interface
type progressService struct {
	BaseService
	gameStateRepo portsrepo.GameStateRepositoryFacade
	expenseRepo   portsrepo.ExpenseReader
	notifier      portssvc.ProgressNotifier
}

// ProgressServiceOption is a functional option for configuring the progress service
type ProgressServiceOption func(*progressService)

// WithProgressNotifier sets where level-up and streak-bonus events are delivered.
func WithProgressNotifier(n portssvc.ProgressNotifier) ProgressServiceOption {
	return func(s *progressService) {
		s.notifier = n
	}
}

// NewProgressService creates a new progress service with the provided options
func NewProgressService(gameStateRepo portsrepo.GameStateRepositoryFacade, expenseRepo portsrepo.ExpenseReader, options ...ProgressServiceOption) portssvc.ProgressSvcFacade {
	svc := &progressService{
		gameStateRepo: gameStateRepo,
		expenseRepo:   expenseRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure progressService implements the ProgressSvcFacade interface
var _ portssvc.ProgressSvcFacade = (*progressService)(nil)

func (s *progressService) GetGameState(ctx context.Context, userID string) (*domain.GameState, error) {
	state, err := s.gameStateRepo.FindGameState(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load game state", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load game state: %w", err)
	}
	return &state, nil
}

func (s *progressService) ApplyExpense(ctx context.Context, userID string, today domain.Date) (*domain.ProgressOutcome, error) {
	state, err := s.gameStateRepo.FindGameState(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load game state", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load game state: %w", err)
	}

	outcome := state.ApplyExpense(today)

	if err := s.gameStateRepo.SaveGameState(ctx, userID, outcome.Current); err != nil {
		s.LogError(ctx, err, "Failed to save game state", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save game state: %w", err)
	}

	s.LogInfo(ctx, "Progress updated",
		slog.String("user_id", userID),
		slog.Int("points", outcome.Current.Points),
		slog.Int("level", outcome.Current.Level()),
		slog.Int("streak", outcome.Current.Streak),
		slog.Int("points_awarded", outcome.PointsAwarded))

	if s.notifier != nil && len(outcome.Events) > 0 {
		s.notifier.NotifyProgress(ctx, userID, outcome.Events)
	}
	return &outcome, nil
}

func (s *progressService) GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error) {
	expenses, err := s.expenseRepo.ListExpenses(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses for dashboard", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	state, err := s.GetGameState(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent := expenses
	if len(recent) > recentExpenseCount {
		recent = recent[:recentExpenseCount]
	}
	return &domain.Dashboard{
		TotalSpent:     domain.TotalAmount(expenses),
		RecentExpenses: recent,
		State:          *state,
	}, nil
}
