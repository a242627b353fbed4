package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/jmkang/household_ledger_app/internal/apperrors"
	"github.com/jmkang/household_ledger_app/internal/core/domain"
	"github.com/jmkang/household_ledger_app/internal/core/services"
	"github.com/jmkang/household_ledger_app/internal/repositories/memory"
)

// --- Test Suite ---
type FixedExpenseServiceTestSuite struct {
	suite.Suite
	store *memory.PeriodStore
}

func (suite *FixedExpenseServiceTestSuite) SetupTest() {
	suite.store = memory.NewPeriodStore()
}

func (suite *FixedExpenseServiceTestSuite) countFixed(period domain.Period) int {
	snapshot, err := suite.store.ReadMonth(context.Background(), period)
	suite.Require().NoError(err)
	n := 0
	for _, dayEntries := range snapshot {
		for _, e := range dayEntries {
			if e.Role == domain.RoleFixedExpense {
				n++
			}
		}
	}
	return n
}

// --- Test Cases ---

func (suite *FixedExpenseServiceTestSuite) TestApplyFixedList_CreatesEntriesOnDayOne() {
	ctx := context.Background()
	period := domain.Period{Year: 2025, Month: 6}
	service := services.NewFixedExpenseService(suite.store, nil)
	list := []domain.RecurringExpense{
		{Name: "rent", Amount: decimal.NewFromInt(800000), Active: true},
		{Name: "internet", Amount: decimal.NewFromInt(35000), Active: true},
	}

	n, err := service.ApplyFixedList(ctx, period, list)

	suite.Require().NoError(err)
	suite.Equal(2, n)

	snapshot, err := suite.store.ReadMonth(ctx, period)
	suite.Require().NoError(err)
	suite.Require().Len(snapshot[1], 2)
	for _, e := range snapshot[1] {
		suite.Equal(domain.RoleFixedExpense, e.Role)
		suite.Equal(domain.Expense, e.Kind)
		suite.Equal(1, e.Day)
	}
}

func (suite *FixedExpenseServiceTestSuite) TestApplyFixedList_Idempotent() {
	ctx := context.Background()
	period := domain.Period{Year: 2025, Month: 6}
	service := services.NewFixedExpenseService(suite.store, nil)
	list := []domain.RecurringExpense{
		{Name: "rent", Amount: decimal.NewFromInt(800000), Active: true},
		{Name: "internet", Amount: decimal.NewFromInt(35000), Active: true},
		{Name: "gym", Amount: decimal.NewFromInt(60000), Active: true},
	}

	for i := 0; i < 3; i++ {
		n, err := service.ApplyFixedList(ctx, period, list)
		suite.Require().NoError(err)
		suite.Equal(3, n)
	}

	suite.Equal(3, suite.countFixed(period))
}

func (suite *FixedExpenseServiceTestSuite) TestApplyFixedList_LeavesOtherEntriesAlone() {
	ctx := context.Background()
	period := domain.Period{Year: 2025, Month: 6}
	service := services.NewFixedExpenseService(suite.store, nil)

	plain := domain.Entry{
		EntryID: uuid.NewString(),
		Kind:    domain.Expense,
		Name:    "coffee",
		Amount:  decimal.NewFromInt(4500),
		Day:     1,
		Role:    domain.RolePlain,
	}
	suite.Require().NoError(suite.store.SaveEntry(ctx, period, 1, plain))

	_, err := service.ApplyFixedList(ctx, period, []domain.RecurringExpense{
		{Name: "rent", Amount: decimal.NewFromInt(800000), Active: true},
	})
	suite.Require().NoError(err)

	snapshot, err := suite.store.ReadMonth(ctx, period)
	suite.Require().NoError(err)
	_, ok := snapshot[1][plain.EntryID]
	suite.True(ok)
}

func (suite *FixedExpenseServiceTestSuite) TestApplyFixedList_SkipsInactive() {
	ctx := context.Background()
	period := domain.Period{Year: 2025, Month: 6}
	service := services.NewFixedExpenseService(suite.store, nil)
	list := []domain.RecurringExpense{
		{Name: "rent", Amount: decimal.NewFromInt(800000), Active: true},
		{Name: "old subscription", Amount: decimal.NewFromInt(9900), Active: false},
	}

	n, err := service.ApplyFixedList(ctx, period, list)

	suite.Require().NoError(err)
	suite.Equal(1, n)
	suite.Equal(1, suite.countFixed(period))
}

func (suite *FixedExpenseServiceTestSuite) TestApplyFixedList_EmptyListRejected() {
	ctx := context.Background()
	period := domain.Period{Year: 2025, Month: 6}
	service := services.NewFixedExpenseService(suite.store, nil)

	n, err := service.ApplyFixedList(ctx, period, []domain.RecurringExpense{
		{Name: "inactive only", Amount: decimal.NewFromInt(100), Active: false},
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrNoRecurringExpenses)
	suite.Equal(0, n)
}

func (suite *FixedExpenseServiceTestSuite) TestApplyFixed_UsesConfiguredList() {
	ctx := context.Background()
	period := domain.Period{Year: 2025, Month: 6}
	recurring := memory.NewRecurringExpenseList([]domain.RecurringExpense{
		{Name: "rent", Amount: decimal.NewFromInt(800000), Active: true},
		{Name: "insurance", Amount: decimal.NewFromInt(120000), Active: true},
	})
	service := services.NewFixedExpenseService(suite.store, recurring)

	n, err := service.ApplyFixed(ctx, period)

	suite.Require().NoError(err)
	suite.Equal(2, n)
	suite.Equal(2, suite.countFixed(period))
}

func (suite *FixedExpenseServiceTestSuite) TestApplyFixed_NoListConfigured() {
	ctx := context.Background()
	period := domain.Period{Year: 2025, Month: 6}
	service := services.NewFixedExpenseService(suite.store, nil)

	n, err := service.ApplyFixed(ctx, period)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnavailable)
	suite.Equal(0, n)
}

// --- Run Suite ---
func TestFixedExpenseService(t *testing.T) {
	suite.Run(t, new(FixedExpenseServiceTestSuite))
}
