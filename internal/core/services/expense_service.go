package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/SscSPs/expense_tracker_app/internal/utils/pagination"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Listing options understood by ListExpenses.
const (
	SortNewest  = "newest"
	SortOldest  = "oldest"
	SortHighest = "highest"
	SortLowest  = "lowest"

	allCategories       = "All"
	defaultExpenseLimit = 50
)

// expenseService implements the ExpenseSvcFacade interface
type expenseService struct {
	BaseService
	expenseRepo  portsrepo.ExpenseRepositoryFacade
	progress     portssvc.ProgressWriterSvc
	achievements portssvc.AchievementWriterSvc
	validate     *validator.Validate
	categoryRule string
	now          func() time.Time
	location     *time.Location
	locks        *userLocks
}

// ExpenseServiceOption is a functional option for configuring the expense service
type ExpenseServiceOption func(*expenseService)

// WithProgressService makes RecordExpense advance the user's game state.
func WithProgressService(p portssvc.ProgressWriterSvc) ExpenseServiceOption {
	return func(s *expenseService) {
		s.progress = p
	}
}

// WithAchievementService makes RecordExpense re-evaluate badges.
func WithAchievementService(a portssvc.AchievementWriterSvc) ExpenseServiceOption {
	return func(s *expenseService) {
		s.achievements = a
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ExpenseServiceOption {
	return func(s *expenseService) {
		s.now = now
	}
}

// WithLocation sets the time zone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) ExpenseServiceOption {
	return func(s *expenseService) {
		s.location = loc
	}
}

func withExpenseUserLocks(l *userLocks) ExpenseServiceOption {
	return func(s *expenseService) {
		s.locks = l
	}
}

// NewExpenseService creates a new expense service with the provided options
func NewExpenseService(repo portsrepo.ExpenseRepositoryFacade, options ...ExpenseServiceOption) portssvc.ExpenseSvcFacade {
	svc := &expenseService{
		expenseRepo:  repo,
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

// Ensure expenseService implements the ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// categoryRule builds the validator tag accepting exactly the fixed categories.
func categoryRule() string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = string(c)
	}
	return "required,oneof=" + strings.Join(names, " ")
}

// Bounds on a money amount as typed by the user.
const (
	maxAmountIntegerDigits  = 15
	maxAmountFractionDigits = 4
)

// parsePositiveAmount accepts only a plain decimal number greater than zero.
// Exponent notation and amounts outside the digit bounds are rejected so a
// single value can never force huge rescaling when amounts are summed.
func parsePositiveAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, "eE") {
		return decimal.Zero, false
	}
	intPart, fracPart, _ := strings.Cut(strings.TrimLeft(raw, "+-"), ".")
	if len(strings.TrimLeft(intPart, "0")) > maxAmountIntegerDigits || len(fracPart) > maxAmountFractionDigits {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount, true
}

func (s *expenseService) validateExpense(req dto.CreateExpenseRequest) (domain.Expense, error) {
	amount, ok := parsePositiveAmount(string(req.Amount))
	if !ok {
		return domain.Expense{}, apperrors.NewValidationError("amount", "Invalid Amount", "Please enter a valid amount")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.Expense{}, apperrors.NewValidationError("description", "Missing Description", "Please enter a description")
	}
	category := strings.TrimSpace(req.Category)
	if err := s.validate.Var(category, s.categoryRule); err != nil {
		return domain.Expense{}, apperrors.NewValidationError("category", "Missing Category", "Please select a category")
	}
	return domain.Expense{
		Amount:      amount,
		Description: description,
		Category:    domain.Category(category),
	}, nil
}

func (s *expenseService) today() domain.Date {
	return domain.DateIn(s.now(), s.location)
}

func (s *expenseService) RecordExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.ExpenseRecordResult, error) {
	expense, err := s.validateExpense(req)
	if err != nil {
		s.LogDebug(ctx, "Rejected expense", slog.String("user_id", userID), slog.String("reason", err.Error()))
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	today := s.today()
	expense.ID = uuid.NewString()
	expense.Date = today

	if err := s.expenseRepo.SaveExpense(ctx, userID, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to save expense: %w", err)
	}
	s.LogInfo(ctx, "Expense recorded",
		slog.String("user_id", userID),
		slog.String("expense_id", expense.ID),
		slog.String("category", string(expense.Category)),
		slog.String("amount", expense.Amount.String()))

	result := &domain.ExpenseRecordResult{Expense: expense}

	// the expense is stored from here on; later failures only add warnings
	if s.progress != nil {
		outcome, err := s.progress.ApplyExpense(ctx, userID, today)
		if err != nil {
			s.LogWarn(ctx, err, "Progress update failed after expense was saved", slog.String("user_id", userID), slog.String("expense_id", expense.ID))
			result.Warnings = append(result.Warnings, "Your expense was saved, but your progress could not be updated.")
		} else {
			result.Progress = outcome
		}
	}

	if s.achievements != nil {
		eval, err := s.achievements.EvaluateBadges(ctx, userID)
		if err != nil {
			s.LogWarn(ctx, err, "Badge evaluation failed after expense was saved", slog.String("user_id", userID), slog.String("expense_id", expense.ID))
			result.Warnings = append(result.Warnings, "Your expense was saved, but your achievements could not be updated.")
		} else {
			result.NewlyUnlocked = eval.NewlyUnlocked
		}
	}

	return result, nil
}

func (s *expenseService) ListExpenses(ctx context.Context, userID string, params dto.ListExpensesParams) (*domain.ExpensePage, error) {
	sortKey := params.Sort
	if sortKey == "" {
		sortKey = SortNewest
	}
	switch sortKey {
	case SortNewest, SortOldest, SortHighest, SortLowest:
	default:
		return nil, apperrors.NewValidationError("sort", "Invalid Sort", fmt.Sprintf("Unknown sort order %q", sortKey))
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultExpenseLimit
	}

	offset := 0
	if params.NextToken != "" {
		var err error
		offset, err = pagination.DecodeOffsetToken(params.NextToken, sortKey)
		if err != nil {
			s.LogDebug(ctx, "Invalid pagination token", slog.String("error", err.Error()))
			return nil, apperrors.NewValidationError("nextToken", "Invalid Page", "The page token is not valid for this listing")
		}
	}

	expenses, err := s.expenseRepo.ListExpenses(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	filtered := filterExpenses(expenses, params.Category, params.Search)
	sortExpenses(filtered, sortKey)

	page := &domain.ExpensePage{Expenses: []domain.Expense{}}
	if offset >= len(filtered) {
		return page, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	page.Expenses = filtered[offset:end]
	if end < len(filtered) {
		page.NextToken = pagination.EncodeOffsetToken(sortKey, end)
	}
	return page, nil
}

// filterExpenses keeps expenses of category (unless empty or "All") whose
// description or category contains search, ignoring case.
func filterExpenses(expenses []domain.Expense, category, search string) []domain.Expense {
	category = strings.TrimSpace(category)
	query := strings.ToLower(strings.TrimSpace(search))

	out := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		if category != "" && category != allCategories && string(e.Category) != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(e.Description), query) &&
			!strings.Contains(strings.ToLower(string(e.Category)), query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// sortExpenses orders expenses in place; ties keep their stored (newest first) order.
func sortExpenses(expenses []domain.Expense, sortKey string) {
	switch sortKey {
	case SortNewest:
		sort.SliceStable(expenses, func(i, j int) bool { return expenses[j].Date.Before(expenses[i].Date) })
	case SortOldest:
		// same-day expenses are stored newest first, so flip before the stable sort
		slices.Reverse(expenses)
		sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Date.Before(expenses[j].Date) })
	case SortHighest:
		sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Amount.GreaterThan(expenses[j].Amount) })
	case SortLowest:
		sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Amount.LessThan(expenses[j].Amount) })
	}
}
