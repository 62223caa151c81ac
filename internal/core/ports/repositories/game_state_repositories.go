package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// GameStateReader defines read operations for game state data
type GameStateReader interface {
	// FindGameState returns the stored state or the zero state when nothing is stored.
	FindGameState(ctx context.Context, userID string) (domain.GameState, error)
}

// GameStateWriter defines write operations for game state data
type GameStateWriter interface {
	// SaveGameState persists points, level, streak and lastLogDate.
	SaveGameState(ctx context.Context, userID string, state domain.GameState) error
}

// GameStateRepositoryFacade combines all game-state repository interfaces
type GameStateRepositoryFacade interface {
	GameStateReader
	GameStateWriter
}
