package keyvalue

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
)

type kvBadgeRepository struct {
	BaseRepository
}

func newKVBadgeRepository(store portsrepo.KeyValueStore) portsrepo.BadgeRepositoryFacade {
	return &kvBadgeRepository{BaseRepository{Store: store}}
}

var _ portsrepo.BadgeRepositoryFacade = (*kvBadgeRepository)(nil)

func (r *kvBadgeRepository) FindBadges(ctx context.Context, userID string) ([]domain.Badge, bool, error) {
	var badges []domain.Badge
	found, err := r.getJSON(ctx, userKey(userID, keyBadges), &badges)
	if err != nil {
		return nil, false, err
	}
	if !found || len(badges) == 0 {
		return nil, false, nil
	}
	return badges, true, nil
}

func (r *kvBadgeRepository) SaveBadges(ctx context.Context, userID string, badges []domain.Badge) error {
	return r.setJSON(ctx, userKey(userID, keyBadges), badges)
}
