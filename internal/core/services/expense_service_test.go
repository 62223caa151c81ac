package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/core/services"
	"github.com/SscSPs/expense_tracker_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ExpenseServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo  *MockExpenseRepository
	mockProgress     *MockProgressService
	mockAchievements *MockAchievementService
	now              time.Time
	service          portssvc.ExpenseSvcFacade
}

func (suite *ExpenseServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockProgress = new(MockProgressService)
	suite.mockAchievements = new(MockAchievementService)
	suite.now = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)
	suite.service = services.NewExpenseService(
		suite.mockExpenseRepo,
		services.WithProgressService(suite.mockProgress),
		services.WithAchievementService(suite.mockAchievements),
		services.WithClock(func() time.Time { return suite.now }),
	)
}

func TestExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

// --- RecordExpense Tests ---
func (suite *ExpenseServiceTestSuite) TestRecordExpense_Success() {
	ctx := context.Background()
	userID := "user-1"
	today := domain.NewDate(2024, time.March, 10)
	outcome := &domain.ProgressOutcome{Current: domain.GameState{Points: 10, Streak: 1, LastLogDate: today}, PointsAwarded: 10}
	unlocked := []domain.Badge{{ID: "1", Name: "First Expense", Unlocked: true}}

	suite.mockExpenseRepo.On("SaveExpense", ctx, userID, mock.MatchedBy(func(e domain.Expense) bool {
		return e.ID != "" &&
			e.Amount.Equal(decimal.RequireFromString("12.5")) &&
			e.Description == "Lunch" &&
			e.Category == domain.CategoryFood &&
			e.Date.Equal(today)
	})).Return(nil).Once()
	suite.mockProgress.On("ApplyExpense", ctx, userID, today).Return(outcome, nil).Once()
	suite.mockAchievements.On("EvaluateBadges", ctx, userID).Return(&domain.BadgeEvaluation{NewlyUnlocked: unlocked}, nil).Once()

	result, err := suite.service.RecordExpense(ctx, userID, dto.CreateExpenseRequest{Amount: "12.5", Description: "  Lunch  ", Category: "Food"})

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal("Lunch", result.Expense.Description)
	suite.Equal(outcome, result.Progress)
	suite.Equal(unlocked, result.NewlyUnlocked)
	suite.Empty(result.Warnings)
	suite.mockExpenseRepo.AssertExpectations(suite.T())
	suite.mockProgress.AssertExpectations(suite.T())
	suite.mockAchievements.AssertExpectations(suite.T())
}

func (suite *ExpenseServiceTestSuite) TestRecordExpense_ValidationErrors() {
	tests := []struct {
		name      string
		req       dto.CreateExpenseRequest
		wantField string
		wantTitle string
		wantMsg   string
	}{
		{"non numeric amount", dto.CreateExpenseRequest{Amount: "abc", Description: "x", Category: "Food"}, "amount", "Invalid Amount", "Please enter a valid amount"},
		{"empty amount", dto.CreateExpenseRequest{Amount: "", Description: "x", Category: "Food"}, "amount", "Invalid Amount", "Please enter a valid amount"},
		{"zero amount", dto.CreateExpenseRequest{Amount: "0", Description: "x", Category: "Food"}, "amount", "Invalid Amount", "Please enter a valid amount"},
		{"negative amount", dto.CreateExpenseRequest{Amount: "-4", Description: "x", Category: "Food"}, "amount", "Invalid Amount", "Please enter a valid amount"},
		{"exponent notation", dto.CreateExpenseRequest{Amount: "1e5", Description: "x", Category: "Food"}, "amount", "Invalid Amount", "Please enter a valid amount"},
		{"tiny exponent", dto.CreateExpenseRequest{Amount: "1e-50000000", Description: "x", Category: "Food"}, "amount", "Invalid Amount", "Please enter a valid amount"},
		{"too many fraction digits", dto.CreateExpenseRequest{Amount: "1.23456", Description: "x", Category: "Food"}, "amount", "Invalid Amount", "Please enter a valid amount"},
		{"too many integer digits", dto.CreateExpenseRequest{Amount: "1234567890123456", Description: "x", Category: "Food"}, "amount", "Invalid Amount", "Please enter a valid amount"},
		{"over-long amount", dto.CreateExpenseRequest{Amount: dto.RawAmount("0." + strings.Repeat("1", 5000)), Description: "x", Category: "Food"}, "amount", "Invalid Amount", "Please enter a valid amount"},
		{"blank description", dto.CreateExpenseRequest{Amount: "4", Description: "   ", Category: "Food"}, "description", "Missing Description", "Please enter a description"},
		{"no category", dto.CreateExpenseRequest{Amount: "4", Description: "x"}, "category", "Missing Category", "Please select a category"},
		{"unknown category", dto.CreateExpenseRequest{Amount: "4", Description: "x", Category: "Travel"}, "category", "Missing Category", "Please select a category"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			result, err := suite.service.RecordExpense(context.Background(), "user-1", tt.req)

			suite.Require().Error(err)
			suite.Nil(result)
			suite.ErrorIs(err, apperrors.ErrValidation)
			var verr *apperrors.ValidationError
			suite.Require().True(errors.As(err, &verr))
			suite.Equal(tt.wantField, verr.Field)
			suite.Equal(tt.wantTitle, verr.Title)
			suite.Equal(tt.wantMsg, verr.Message)
		})
	}

	// nothing was stored and no progress was made
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "SaveExpense", mock.Anything, mock.Anything, mock.Anything)
	suite.mockProgress.AssertNotCalled(suite.T(), "ApplyExpense", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestRecordExpense_SaveError() {
	ctx := context.Background()
	suite.mockExpenseRepo.On("SaveExpense", ctx, "user-1", mock.AnythingOfType("domain.Expense")).Return(apperrors.ErrPersistence).Once()

	result, err := suite.service.RecordExpense(ctx, "user-1", dto.CreateExpenseRequest{Amount: "3", Description: "Bus", Category: "Transport"})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.mockProgress.AssertNotCalled(suite.T(), "ApplyExpense", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAchievements.AssertNotCalled(suite.T(), "EvaluateBadges", mock.Anything, mock.Anything)
}

func (suite *ExpenseServiceTestSuite) TestRecordExpense_LaterFailuresAreWarnings() {
	ctx := context.Background()
	suite.mockExpenseRepo.On("SaveExpense", ctx, "user-1", mock.AnythingOfType("domain.Expense")).Return(nil).Once()
	suite.mockProgress.On("ApplyExpense", ctx, "user-1", mock.AnythingOfType("domain.Date")).Return(nil, assert.AnError).Once()
	suite.mockAchievements.On("EvaluateBadges", ctx, "user-1").Return(nil, assert.AnError).Once()

	result, err := suite.service.RecordExpense(ctx, "user-1", dto.CreateExpenseRequest{Amount: "3", Description: "Bus", Category: "Transport"})

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.NotEmpty(result.Expense.ID)
	suite.Nil(result.Progress)
	suite.Empty(result.NewlyUnlocked)
	suite.Len(result.Warnings, 2)
}

func (suite *ExpenseServiceTestSuite) TestRecordExpense_UsesConfiguredTimeZone() {
	ctx := context.Background()
	kolkata := time.FixedZone("IST", 5*3600+1800)
	late := time.Date(2024, time.March, 10, 20, 0, 0, 0, time.UTC) // already the 11th in IST
	svc := services.NewExpenseService(
		suite.mockExpenseRepo,
		services.WithProgressService(suite.mockProgress),
		services.WithClock(func() time.Time { return late }),
		services.WithLocation(kolkata),
	)
	want := domain.NewDate(2024, time.March, 11)

	suite.mockExpenseRepo.On("SaveExpense", ctx, "user-1", mock.MatchedBy(func(e domain.Expense) bool { return e.Date.Equal(want) })).Return(nil).Once()
	suite.mockProgress.On("ApplyExpense", ctx, "user-1", want).Return(&domain.ProgressOutcome{}, nil).Once()

	_, err := svc.RecordExpense(ctx, "user-1", dto.CreateExpenseRequest{Amount: "1", Description: "Tea", Category: "Food"})

	suite.Require().NoError(err)
	suite.mockProgress.AssertExpectations(suite.T())
}

// --- ListExpenses Tests ---
func (suite *ExpenseServiceTestSuite) sampleExpenses() []domain.Expense {
	// stored newest first
	return []domain.Expense{
		{ID: "e4", Amount: decimal.NewFromInt(15), Description: "Movie night", Category: domain.CategoryEntertainment, Date: domain.NewDate(2024, time.March, 4)},
		{ID: "e3", Amount: decimal.NewFromInt(40), Description: "Groceries", Category: domain.CategoryFood, Date: domain.NewDate(2024, time.March, 3)},
		{ID: "e2", Amount: decimal.NewFromInt(5), Description: "Coffee", Category: domain.CategoryFood, Date: domain.NewDate(2024, time.March, 2)},
		{ID: "e1", Amount: decimal.NewFromInt(40), Description: "Electric bill", Category: domain.CategoryBills, Date: domain.NewDate(2024, time.March, 1)},
	}
}

func ids(expenses []domain.Expense) []string {
	out := make([]string, len(expenses))
	for i, e := range expenses {
		out[i] = e.ID
	}
	return out
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_FilterSearchSort() {
	ctx := context.Background()
	suite.mockExpenseRepo.On("ListExpenses", ctx, "user-1").Return(suite.sampleExpenses(), nil)

	tests := []struct {
		name   string
		params dto.ListExpensesParams
		want   []string
	}{
		{"default is newest", dto.ListExpensesParams{}, []string{"e4", "e3", "e2", "e1"}},
		{"oldest", dto.ListExpensesParams{Sort: services.SortOldest}, []string{"e1", "e2", "e3", "e4"}},
		{"highest keeps stored order on ties", dto.ListExpensesParams{Sort: services.SortHighest}, []string{"e3", "e1", "e4", "e2"}},
		{"lowest", dto.ListExpensesParams{Sort: services.SortLowest}, []string{"e2", "e4", "e3", "e1"}},
		{"category", dto.ListExpensesParams{Category: "Food"}, []string{"e3", "e2"}},
		{"All means no filter", dto.ListExpensesParams{Category: "All"}, []string{"e4", "e3", "e2", "e1"}},
		{"search description ignores case", dto.ListExpensesParams{Search: "COFFEE"}, []string{"e2"}},
		{"search matches category", dto.ListExpensesParams{Search: "entertain"}, []string{"e4"}},
		{"search and category combine", dto.ListExpensesParams{Search: "groc", Category: "Bills"}, []string{}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			page, err := suite.service.ListExpenses(ctx, "user-1", tt.params)
			suite.Require().NoError(err)
			suite.Equal(tt.want, ids(page.Expenses))
			suite.Empty(page.NextToken)
		})
	}
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_SameDayOrder() {
	ctx := context.Background()
	day := domain.NewDate(2024, time.March, 5)
	// stored newest first, all on one day
	stored := []domain.Expense{
		{ID: "third", Amount: decimal.NewFromInt(3), Description: "Dinner", Category: domain.CategoryFood, Date: day},
		{ID: "second", Amount: decimal.NewFromInt(2), Description: "Lunch", Category: domain.CategoryFood, Date: day},
		{ID: "first", Amount: decimal.NewFromInt(1), Description: "Breakfast", Category: domain.CategoryFood, Date: day},
		{ID: "earlier", Amount: decimal.NewFromInt(9), Description: "Taxi", Category: domain.CategoryTransport, Date: domain.NewDate(2024, time.March, 4)},
	}
	suite.mockExpenseRepo.On("ListExpenses", ctx, "user-1").Return(stored, nil)

	newest, err := suite.service.ListExpenses(ctx, "user-1", dto.ListExpensesParams{Sort: services.SortNewest})
	suite.Require().NoError(err)
	suite.Equal([]string{"third", "second", "first", "earlier"}, ids(newest.Expenses))

	oldest, err := suite.service.ListExpenses(ctx, "user-1", dto.ListExpensesParams{Sort: services.SortOldest})
	suite.Require().NoError(err)
	suite.Equal([]string{"earlier", "first", "second", "third"}, ids(oldest.Expenses))

	// listing never reorders what the repository returned
	suite.Equal("third", stored[0].ID)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_Pagination() {
	ctx := context.Background()
	suite.mockExpenseRepo.On("ListExpenses", ctx, "user-1").Return(suite.sampleExpenses(), nil)

	first, err := suite.service.ListExpenses(ctx, "user-1", dto.ListExpensesParams{Limit: 3})
	suite.Require().NoError(err)
	suite.Equal([]string{"e4", "e3", "e2"}, ids(first.Expenses))
	suite.Require().NotEmpty(first.NextToken)

	second, err := suite.service.ListExpenses(ctx, "user-1", dto.ListExpensesParams{Limit: 3, NextToken: first.NextToken})
	suite.Require().NoError(err)
	suite.Equal([]string{"e1"}, ids(second.Expenses))
	suite.Empty(second.NextToken)

	// a token issued for one order is refused for another
	_, err = suite.service.ListExpenses(ctx, "user-1", dto.ListExpensesParams{Sort: services.SortLowest, NextToken: first.NextToken})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_RepoError() {
	ctx := context.Background()
	suite.mockExpenseRepo.On("ListExpenses", ctx, "user-1").Return(nil, assert.AnError).Once()

	page, err := suite.service.ListExpenses(ctx, "user-1", dto.ListExpensesParams{})

	suite.Require().Error(err)
	suite.Nil(page)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *ExpenseServiceTestSuite) TestListExpenses_UnknownSort() {
	_, err := suite.service.ListExpenses(context.Background(), "user-1", dto.ListExpensesParams{Sort: "alphabetical"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}
