package services

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// ProgressReaderSvc defines read operations for game state data
type ProgressReaderSvc interface {
	// GetGameState returns the user's points, streak and last log date.
	GetGameState(ctx context.Context, userID string) (*domain.GameState, error)

	// GetDashboard returns the home screen summary.
	GetDashboard(ctx context.Context, userID string) (*domain.Dashboard, error)
}

// ProgressWriterSvc defines write operations for game state data
type ProgressWriterSvc interface {
	// ApplyExpense loads the state, applies one expense logged on today and persists the result.
	ApplyExpense(ctx context.Context, userID string, today domain.Date) (*domain.ProgressOutcome, error)
}

// ProgressSvcFacade combines all progress-related service interfaces
type ProgressSvcFacade interface {
	ProgressReaderSvc
	ProgressWriterSvc
}

// ProgressNotifier receives level-up, streak-bonus and badge-unlock notifications.
// Implementations must not block the caller on delivery failures.
type ProgressNotifier interface {
	NotifyProgress(ctx context.Context, userID string, events []domain.ProgressEvent)
	NotifyBadgesUnlocked(ctx context.Context, userID string, badges []domain.Badge)
}
