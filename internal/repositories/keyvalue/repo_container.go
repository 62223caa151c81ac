package keyvalue

import (
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds every repository on top of one key-value store.
func NewRepositoryProvider(store portsrepo.KeyValueStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExpenseRepo:      newKVExpenseRepository(store),
		GameStateRepo:    newKVGameStateRepository(store),
		BadgeRepo:        newKVBadgeRepository(store),
		BudgetRepo:       newKVBudgetRepository(store),
		VerificationRepo: newKVVerificationRepository(store),
		SessionRepo:      newKVSessionRepository(store),
	}
}
