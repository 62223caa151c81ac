package services

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// AchievementReaderSvc defines read operations for badge data
type AchievementReaderSvc interface {
	// ListBadges returns the user's badges in catalog order, initialising them on first use.
	ListBadges(ctx context.Context, userID string) ([]domain.Badge, error)

	// Catalog returns the static badge definitions.
	Catalog() []domain.BadgeDefinition
}

// AchievementWriterSvc defines write operations for badge data
type AchievementWriterSvc interface {
	// EvaluateBadges re-checks every locked badge against the user's current data and persists the result.
	EvaluateBadges(ctx context.Context, userID string) (*domain.BadgeEvaluation, error)

	// RecomputeBadges rebuilds the stored badges from the catalog, keeping badges already unlocked.
	RecomputeBadges(ctx context.Context, userID string) (*domain.BadgeEvaluation, error)
}

// AchievementSvcFacade combines all achievement-related service interfaces
type AchievementSvcFacade interface {
	AchievementReaderSvc
	AchievementWriterSvc
}
