package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/jmkang/household_ledger_app/internal/core/domain"
	portssvc "github.com/jmkang/household_ledger_app/internal/core/ports/services"
	"github.com/jmkang/household_ledger_app/internal/core/services"
	"github.com/jmkang/household_ledger_app/internal/repositories/memory"
)

// --- Test Suite ---
type CardUsageServiceTestSuite struct {
	suite.Suite
	store   *memory.PeriodStore
	service portssvc.CardUsageSvcFacade
}

func (suite *CardUsageServiceTestSuite) SetupTest() {
	suite.store = memory.NewPeriodStore()
	suite.service = services.NewCardUsageService(suite.store)
}

func (suite *CardUsageServiceTestSuite) save(period domain.Period, day int, method string, role domain.BillingRole, amount int64, inst *domain.Installment) {
	entry := domain.Entry{
		EntryID:     uuid.NewString(),
		Kind:        domain.Expense,
		Name:        "purchase",
		Amount:      decimal.NewFromInt(amount),
		Method:      method,
		Day:         day,
		Role:        role,
		Installment: inst,
	}
	suite.Require().NoError(suite.store.SaveEntry(context.Background(), period, day, entry))
}

// --- Test Cases ---

func (suite *CardUsageServiceTestSuite) TestCardUsage_BilledPlusUpcoming() {
	ctx := context.Background()
	period := domain.Period{Year: 2025, Month: 6}
	goals := map[string]decimal.Decimal{
		"신한카드": decimal.NewFromInt(500000),
	}

	// bill arriving this period
	suite.save(period, 1, "신한카드", domain.RoleCardDeferred, 120000, nil)
	// purchase made this period, billing next period
	suite.save(period, 15, "신한카드", domain.RoleCardReference, 80000, nil)
	// plain spend on the same method label is not card usage
	suite.save(period, 20, "신한카드", domain.RolePlain, 999999, nil)

	usages, err := suite.service.CardUsage(ctx, period, goals)

	suite.Require().NoError(err)
	suite.Require().Len(usages, 1)
	suite.Equal("신한카드", usages[0].Card)
	suite.True(usages[0].Used.Equal(decimal.NewFromInt(200000)))
	suite.Equal(40, usages[0].Pct)
}

func (suite *CardUsageServiceTestSuite) TestCardUsage_InstallmentReferenceUsesPlanTotal() {
	ctx := context.Background()
	period := domain.Period{Year: 2025, Month: 6}
	goals := map[string]decimal.Decimal{
		"국민카드": decimal.NewFromInt(1000000),
	}

	suite.save(period, 10, "국민카드", domain.RoleCardReference, 900000,
		&domain.Installment{Count: 3, TotalAmount: decimal.NewFromInt(900000)})

	usages, err := suite.service.CardUsage(ctx, period, goals)

	suite.Require().NoError(err)
	suite.Require().Len(usages, 1)
	suite.True(usages[0].Used.Equal(decimal.NewFromInt(900000)))
	suite.Equal(90, usages[0].Pct)
}

func (suite *CardUsageServiceTestSuite) TestCardUsage_OnlyGoalCardsReported() {
	ctx := context.Background()
	period := domain.Period{Year: 2025, Month: 6}
	goals := map[string]decimal.Decimal{
		"b카드": decimal.NewFromInt(100000),
		"a카드": decimal.NewFromInt(200000),
	}

	suite.save(period, 1, "c카드", domain.RoleCardDeferred, 50000, nil)

	usages, err := suite.service.CardUsage(ctx, period, goals)

	suite.Require().NoError(err)
	suite.Require().Len(usages, 2)
	// card name order, zero usage for untouched cards
	suite.Equal("a카드", usages[0].Card)
	suite.True(usages[0].Used.IsZero())
	suite.Equal(0, usages[0].Pct)
	suite.Equal("b카드", usages[1].Card)
}

func (suite *CardUsageServiceTestSuite) TestCardUsage_PctCappedAtHundred() {
	ctx := context.Background()
	period := domain.Period{Year: 2025, Month: 6}
	goals := map[string]decimal.Decimal{
		"신한카드": decimal.NewFromInt(100000),
	}

	suite.save(period, 1, "신한카드", domain.RoleCardDeferred, 250000, nil)

	usages, err := suite.service.CardUsage(ctx, period, goals)

	suite.Require().NoError(err)
	suite.Require().Len(usages, 1)
	suite.True(usages[0].Used.Equal(decimal.NewFromInt(250000)))
	suite.Equal(100, usages[0].Pct)
}

func (suite *CardUsageServiceTestSuite) TestCardUsage_ZeroGoalAmount() {
	ctx := context.Background()
	period := domain.Period{Year: 2025, Month: 6}
	goals := map[string]decimal.Decimal{
		"신한카드": decimal.Zero,
	}

	suite.save(period, 1, "신한카드", domain.RoleCardDeferred, 50000, nil)

	usages, err := suite.service.CardUsage(ctx, period, goals)

	suite.Require().NoError(err)
	suite.Require().Len(usages, 1)
	suite.Equal(0, usages[0].Pct)
}

// --- Run Suite ---
func TestCardUsageService(t *testing.T) {
	suite.Run(t, new(CardUsageServiceTestSuite))
}
