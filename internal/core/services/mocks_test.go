package services_test

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) ListExpenses(ctx context.Context, userID string) ([]domain.Expense, error) {
	args := m.Called(ctx, userID)
	var expenses []domain.Expense
	if args.Get(0) != nil {
		expenses = args.Get(0).([]domain.Expense)
	}
	return expenses, args.Error(1)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, userID string, expense domain.Expense) error {
	args := m.Called(ctx, userID, expense)
	return args.Error(0)
}

// --- Mock GameStateRepository ---
type MockGameStateRepository struct {
	mock.Mock
}

func (m *MockGameStateRepository) FindGameState(ctx context.Context, userID string) (domain.GameState, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.GameState), args.Error(1)
}

func (m *MockGameStateRepository) SaveGameState(ctx context.Context, userID string, state domain.GameState) error {
	args := m.Called(ctx, userID, state)
	return args.Error(0)
}

// --- Mock ProgressService ---
type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) ApplyExpense(ctx context.Context, userID string, today domain.Date) (*domain.ProgressOutcome, error) {
	args := m.Called(ctx, userID, today)
	var outcome *domain.ProgressOutcome
	if args.Get(0) != nil {
		outcome = args.Get(0).(*domain.ProgressOutcome)
	}
	return outcome, args.Error(1)
}

// --- Mock AchievementService ---
type MockAchievementService struct {
	mock.Mock
}

func (m *MockAchievementService) EvaluateBadges(ctx context.Context, userID string) (*domain.BadgeEvaluation, error) {
	args := m.Called(ctx, userID)
	var eval *domain.BadgeEvaluation
	if args.Get(0) != nil {
		eval = args.Get(0).(*domain.BadgeEvaluation)
	}
	return eval, args.Error(1)
}

func (m *MockAchievementService) RecomputeBadges(ctx context.Context, userID string) (*domain.BadgeEvaluation, error) {
	args := m.Called(ctx, userID)
	var eval *domain.BadgeEvaluation
	if args.Get(0) != nil {
		eval = args.Get(0).(*domain.BadgeEvaluation)
	}
	return eval, args.Error(1)
}

// --- Mock ProgressNotifier ---
type MockProgressNotifier struct {
	mock.Mock
}

func (m *MockProgressNotifier) NotifyProgress(ctx context.Context, userID string, events []domain.ProgressEvent) {
	m.Called(ctx, userID, events)
}

func (m *MockProgressNotifier) NotifyBadgesUnlocked(ctx context.Context, userID string, badges []domain.Badge) {
	m.Called(ctx, userID, badges)
}

// --- Capturing SMS sender ---
type captureSMSSender struct {
	codes map[string]string
	err   error
}

func newCaptureSMSSender() *captureSMSSender {
	return &captureSMSSender{codes: make(map[string]string)}
}

func (s *captureSMSSender) SendCode(_ context.Context, phoneNumber string, code string) error {
	if s.err != nil {
		return s.err
	}
	s.codes[phoneNumber] = code
	return nil
}
