package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// budgetService implements the BudgetSvcFacade interface
type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepositoryFacade
	expenseRepo  portsrepo.ExpenseReader
	achievements portssvc.AchievementWriterSvc
	validate     *validator.Validate
	categoryRule string
	now          func() time.Time
	location     *time.Location
	locks        *userLocks
}

// BudgetServiceOption is a functional option for configuring the budget service
type BudgetServiceOption func(*budgetService)

// WithBudgetAchievements makes CreateBudget re-evaluate badges.
func WithBudgetAchievements(a portssvc.AchievementWriterSvc) BudgetServiceOption {
	return func(s *budgetService) {
		s.achievements = a
	}
}

// WithBudgetClock replaces time.Now.
func WithBudgetClock(now func() time.Time) BudgetServiceOption {
	return func(s *budgetService) {
		s.now = now
	}
}

// WithBudgetLocation sets the time zone calendar months are measured in.
func WithBudgetLocation(loc *time.Location) BudgetServiceOption {
	return func(s *budgetService) {
		s.location = loc
	}
}

func withBudgetUserLocks(l *userLocks) BudgetServiceOption {
	return func(s *budgetService) {
		s.locks = l
	}
}

// NewBudgetService creates a new budget service with the provided options
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, expenseRepo portsrepo.ExpenseReader, options ...BudgetServiceOption) portssvc.BudgetSvcFacade {
	svc := &budgetService{
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		validate:     validator.New(),
		categoryRule: categoryRule(),
		now:          time.Now,
		location:     time.UTC,
	}
	for _, option := range options {
		option(svc)
	}
	if svc.locks == nil {
		svc.locks = newUserLocks()
	}
	return svc
}

// Ensure budgetService implements the BudgetSvcFacade interface
var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.BudgetStatus, *domain.BadgeEvaluation, error) {
	category := strings.TrimSpace(req.Category)
	if err := s.validate.Var(category, s.categoryRule); err != nil {
		return nil, nil, apperrors.NewValidationError("category", "Missing Category", "Please select a category")
	}
	limit, ok := parsePositiveAmount(string(req.Limit))
	if !ok {
		return nil, nil, apperrors.NewValidationError("limit", "Invalid Amount", "Please enter a valid amount")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	existing, err := s.budgetRepo.ListBudgets(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("user_id", userID))
		return nil, nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	for _, b := range existing {
		if string(b.Category) == category {
			return nil, nil, fmt.Errorf("a budget for %s already exists: %w", category, apperrors.ErrDuplicate)
		}
	}

	budget := domain.Budget{
		ID:        uuid.NewString(),
		Category:  domain.Category(category),
		Limit:     limit,
		CreatedAt: s.now().UTC(),
	}
	if err := s.budgetRepo.SaveBudget(ctx, userID, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("user_id", userID))
		return nil, nil, fmt.Errorf("failed to save budget: %w", err)
	}
	s.LogInfo(ctx, "Budget created",
		slog.String("user_id", userID),
		slog.String("budget_id", budget.ID),
		slog.String("category", category),
		slog.String("limit", limit.String()))

	expenses, err := s.expenseRepo.ListExpenses(ctx, userID)
	if err != nil {
		s.LogWarn(ctx, err, "Failed to list expenses for new budget status", slog.String("user_id", userID))
		expenses = nil
	}
	status := budget.StatusFor(expenses, domain.DateIn(s.now(), s.location))

	var eval *domain.BadgeEvaluation
	if s.achievements != nil {
		eval, err = s.achievements.EvaluateBadges(ctx, userID)
		if err != nil {
			// the budget is stored; badges catch up on the next evaluation
			s.LogWarn(ctx, err, "Badge evaluation failed after budget was saved", slog.String("user_id", userID))
			eval = nil
		}
	}
	return &status, eval, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string) ([]domain.BudgetStatus, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	expenses, err := s.expenseRepo.ListExpenses(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	today := domain.DateIn(s.now(), s.location)
	statuses := make([]domain.BudgetStatus, len(budgets))
	for i, b := range budgets {
		statuses[i] = b.StatusFor(expenses, today)
	}
	return statuses, nil
}
