package keyvalue

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
)

type kvExpenseRepository struct {
	BaseRepository
}

func newKVExpenseRepository(store portsrepo.KeyValueStore) portsrepo.ExpenseRepositoryFacade {
	return &kvExpenseRepository{BaseRepository{Store: store}}
}

// Ensure kvExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*kvExpenseRepository)(nil)

func (r *kvExpenseRepository) ListExpenses(ctx context.Context, userID string) ([]domain.Expense, error) {
	var expenses []domain.Expense
	found, err := r.getJSON(ctx, userKey(userID, keyExpenses), &expenses)
	if err != nil {
		return nil, err
	}
	if !found || expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

func (r *kvExpenseRepository) SaveExpense(ctx context.Context, userID string, expense domain.Expense) error {
	existing, err := r.ListExpenses(ctx, userID)
	if err != nil {
		return err
	}
	updated := make([]domain.Expense, 0, len(existing)+1)
	updated = append(updated, expense)
	updated = append(updated, existing...)
	return r.setJSON(ctx, userKey(userID, keyExpenses), updated)
}
