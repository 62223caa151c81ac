package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProgressServiceTestSuite struct {
	suite.Suite
	mockGameStateRepo *MockGameStateRepository
	mockExpenseRepo   *MockExpenseRepository
	mockNotifier      *MockProgressNotifier
	service           portssvc.ProgressSvcFacade
}

func (suite *ProgressServiceTestSuite) SetupTest() {
	suite.mockGameStateRepo = new(MockGameStateRepository)
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockNotifier = new(MockProgressNotifier)
	suite.service = services.NewProgressService(suite.mockGameStateRepo, suite.mockExpenseRepo, services.WithProgressNotifier(suite.mockNotifier))
}

func TestProgressServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProgressServiceTestSuite))
}

func (suite *ProgressServiceTestSuite) TestApplyExpense_PersistsAndNotifies() {
	ctx := context.Background()
	yesterday := domain.NewDate(2024, time.March, 4)
	today := domain.NewDate(2024, time.March, 5)
	before := domain.GameState{Points: 90, Streak: 4, LastLogDate: yesterday}
	want := domain.GameState{Points: 110, Streak: 5, LastLogDate: today}

	suite.mockGameStateRepo.On("FindGameState", ctx, "user-1").Return(before, nil).Once()
	suite.mockGameStateRepo.On("SaveGameState", ctx, "user-1", want).Return(nil).Once()
	suite.mockNotifier.On("NotifyProgress", ctx, "user-1", mock.MatchedBy(func(events []domain.ProgressEvent) bool {
		return len(events) == 2 && events[0].Type == domain.EventLevelUp && events[1].Type == domain.EventStreakBonus
	})).Once()

	outcome, err := suite.service.ApplyExpense(ctx, "user-1", today)

	suite.Require().NoError(err)
	suite.Equal(want, outcome.Current)
	suite.Equal(20, outcome.PointsAwarded)
	suite.True(outcome.LeveledUp())
	suite.mockGameStateRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *ProgressServiceTestSuite) TestApplyExpense_NoEventsNoNotification() {
	ctx := context.Background()
	today := domain.NewDate(2024, time.March, 5)

	suite.mockGameStateRepo.On("FindGameState", ctx, "user-1").Return(domain.GameState{}, nil).Once()
	suite.mockGameStateRepo.On("SaveGameState", ctx, "user-1", mock.AnythingOfType("domain.GameState")).Return(nil).Once()

	_, err := suite.service.ApplyExpense(ctx, "user-1", today)

	suite.Require().NoError(err)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyProgress", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProgressServiceTestSuite) TestApplyExpense_SaveError() {
	ctx := context.Background()
	suite.mockGameStateRepo.On("FindGameState", ctx, "user-1").Return(domain.GameState{}, nil).Once()
	suite.mockGameStateRepo.On("SaveGameState", ctx, "user-1", mock.AnythingOfType("domain.GameState")).Return(apperrors.ErrPersistence).Once()

	outcome, err := suite.service.ApplyExpense(ctx, "user-1", domain.NewDate(2024, time.March, 5))

	suite.Require().Error(err)
	suite.Nil(outcome)
	suite.ErrorIs(err, apperrors.ErrPersistence)
}

func (suite *ProgressServiceTestSuite) TestApplyExpense_LoadError() {
	ctx := context.Background()
	suite.mockGameStateRepo.On("FindGameState", ctx, "user-1").Return(domain.GameState{}, assert.AnError).Once()

	outcome, err := suite.service.ApplyExpense(ctx, "user-1", domain.NewDate(2024, time.March, 5))

	suite.Require().Error(err)
	suite.Nil(outcome)
	suite.mockGameStateRepo.AssertNotCalled(suite.T(), "SaveGameState", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProgressServiceTestSuite) TestGetDashboard() {
	ctx := context.Background()
	expenses := []domain.Expense{
		{ID: "e5", Amount: decimal.RequireFromString("1.25")},
		{ID: "e4", Amount: decimal.NewFromInt(2)},
		{ID: "e3", Amount: decimal.NewFromInt(3)},
		{ID: "e2", Amount: decimal.NewFromInt(4)},
	}
	state := domain.GameState{Points: 140, Streak: 2}
	suite.mockExpenseRepo.On("ListExpenses", ctx, "user-1").Return(expenses, nil).Once()
	suite.mockGameStateRepo.On("FindGameState", ctx, "user-1").Return(state, nil).Once()

	dash, err := suite.service.GetDashboard(ctx, "user-1")

	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("10.25").Equal(dash.TotalSpent))
	suite.Equal([]string{"e5", "e4", "e3"}, ids(dash.RecentExpenses))
	suite.Equal(state, dash.State)
	suite.Equal(2, dash.State.Level())
	suite.Equal(40, dash.State.LevelProgressPercent())
}
