package repositories

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
)

// BadgeReader defines read operations for badge data
type BadgeReader interface {
	// FindBadges returns the stored badges and whether a usable snapshot existed.
	FindBadges(ctx context.Context, userID string) ([]domain.Badge, bool, error)
}

// BadgeWriter defines write operations for badge data
type BadgeWriter interface {
	SaveBadges(ctx context.Context, userID string, badges []domain.Badge) error
}

// BadgeRepositoryFacade combines all badge repository interfaces
type BadgeRepositoryFacade interface {
	BadgeReader
	BadgeWriter
}
