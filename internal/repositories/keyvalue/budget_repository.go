package keyvalue

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
)

type kvBudgetRepository struct {
	BaseRepository
}

func newKVBudgetRepository(store portsrepo.KeyValueStore) portsrepo.BudgetRepositoryFacade {
	return &kvBudgetRepository{BaseRepository{Store: store}}
}

var _ portsrepo.BudgetRepositoryFacade = (*kvBudgetRepository)(nil)

func (r *kvBudgetRepository) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	var budgets []domain.Budget
	found, err := r.getJSON(ctx, userKey(userID, keyBudgets), &budgets)
	if err != nil {
		return nil, err
	}
	if !found || budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

func (r *kvBudgetRepository) SaveBudget(ctx context.Context, userID string, budget domain.Budget) error {
	existing, err := r.ListBudgets(ctx, userID)
	if err != nil {
		return err
	}
	return r.setJSON(ctx, userKey(userID, keyBudgets), append(existing, budget))
}
