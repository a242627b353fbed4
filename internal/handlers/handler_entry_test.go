package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/jmkang/household_ledger_app/internal/apperrors"
	"github.com/jmkang/household_ledger_app/internal/core/domain"
	portssvc "github.com/jmkang/household_ledger_app/internal/core/ports/services"
	"github.com/jmkang/household_ledger_app/internal/dto"
	"github.com/jmkang/household_ledger_app/internal/handlers"
	"github.com/jmkang/household_ledger_app/internal/platform/config"
)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) Post(ctx context.Context, origin domain.Period, req dto.PostEntryRequest) ([]domain.Entry, error) {
	args := m.Called(ctx, origin, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockPostingService) Edit(ctx context.Context, period domain.Period, day int, entryID string, req dto.PostEntryRequest) error {
	args := m.Called(ctx, period, day, entryID, req)
	return args.Error(0)
}

func (m *MockPostingService) Delete(ctx context.Context, period domain.Period, day int, entryID string) error {
	args := m.Called(ctx, period, day, entryID)
	return args.Error(0)
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Mock SummaryService ---
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) Summarize(snapshot domain.MonthSnapshot) domain.PeriodTotals {
	args := m.Called(snapshot)
	return args.Get(0).(domain.PeriodTotals)
}

func (m *MockSummaryService) MonthSnapshot(ctx context.Context, period domain.Period) (domain.MonthSnapshot, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.MonthSnapshot), args.Error(1)
}

func (m *MockSummaryService) PeriodSummary(ctx context.Context, period domain.Period) (*domain.PeriodSummary, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodSummary), args.Error(1)
}

func (m *MockSummaryService) ListInstallments(ctx context.Context, period domain.Period) ([]domain.InstallmentProgress, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InstallmentProgress), args.Error(1)
}

var _ portssvc.SummarySvcFacade = (*MockSummaryService)(nil)

// --- Mock CarryoverService ---
type MockCarryoverService struct {
	mock.Mock
}

func (m *MockCarryoverService) Carryover(ctx context.Context, upto domain.Period) (decimal.Decimal, error) {
	args := m.Called(ctx, upto)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.CarryoverSvcFacade = (*MockCarryoverService)(nil)

// --- Mock CardUsageService ---
type MockCardUsageService struct {
	mock.Mock
}

func (m *MockCardUsageService) CardUsage(ctx context.Context, period domain.Period, goals map[string]decimal.Decimal) ([]domain.CardUsage, error) {
	args := m.Called(ctx, period, goals)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CardUsage), args.Error(1)
}

var _ portssvc.CardUsageSvcFacade = (*MockCardUsageService)(nil)

// --- Mock FixedExpenseService ---
type MockFixedExpenseService struct {
	mock.Mock
}

func (m *MockFixedExpenseService) ApplyFixed(ctx context.Context, period domain.Period) (int, error) {
	args := m.Called(ctx, period)
	return args.Int(0), args.Error(1)
}

func (m *MockFixedExpenseService) ApplyFixedList(ctx context.Context, period domain.Period, list []domain.RecurringExpense) (int, error) {
	args := m.Called(ctx, period, list)
	return args.Int(0), args.Error(1)
}

var _ portssvc.FixedExpenseSvcFacade = (*MockFixedExpenseService)(nil)

// --- Test Suite ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockPosting   *MockPostingService
	mockSummary   *MockSummaryService
	mockCardUsage *MockCardUsageService
	mockFixed     *MockFixedExpenseService
	goals         map[string]decimal.Decimal
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockPosting = new(MockPostingService)
	suite.mockSummary = new(MockSummaryService)
	suite.mockCardUsage = new(MockCardUsageService)
	suite.mockFixed = new(MockFixedExpenseService)
	suite.goals = map[string]decimal.Decimal{"신한카드": decimal.NewFromInt(500000)}

	cfg := &config.Config{CardGoals: suite.goals}
	container := &portssvc.ServiceContainer{
		Posting:   suite.mockPosting,
		Summary:   suite.mockSummary,
		Carryover: new(MockCarryoverService),
		CardUsage: suite.mockCardUsage,
		Fixed:     suite.mockFixed,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *EntryHandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *EntryHandlerTestSuite) TestPostEntry_Created() {
	req := dto.PostEntryRequest{
		Kind:   domain.Expense,
		Day:    15,
		Name:   "groceries",
		Amount: decimal.NewFromInt(32000),
	}
	created := []domain.Entry{{EntryID: "e1", Kind: domain.Expense, Name: "groceries", Amount: req.Amount, Day: 15, Role: domain.RolePlain}}

	suite.mockPosting.On("Post", mock.Anything, domain.Period{Year: 2025, Month: 6}, req).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/periods/2025/6/entries", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PostEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Entries, 1)
	suite.Equal("e1", resp.Entries[0].EntryID)
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostEntry_ValidationError() {
	req := dto.PostEntryRequest{
		Kind:   domain.Expense,
		Day:    30,
		Name:   "x",
		Amount: decimal.NewFromInt(100),
	}

	suite.mockPosting.On("Post", mock.Anything, domain.Period{Year: 2025, Month: 2}, req).Return(nil, apperrors.ErrValidation).Once()

	w := suite.do(http.MethodPost, "/api/v1/periods/2025/2/entries", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostEntry_PartialWrite() {
	req := dto.PostEntryRequest{
		Kind:   domain.Expense,
		Day:    8,
		Name:   "fuel",
		Amount: decimal.NewFromInt(70000),
		Method: "신한카드",
	}
	created := []domain.Entry{{EntryID: "e1", Role: domain.RoleCardDeferred, Amount: req.Amount}}

	suite.mockPosting.On("Post", mock.Anything, domain.Period{Year: 2025, Month: 6}, req).Return(created, apperrors.ErrPartialWrite).Once()

	w := suite.do(http.MethodPost, "/api/v1/periods/2025/6/entries", req)

	suite.Equal(http.StatusMultiStatus, w.Code)
	suite.Contains(w.Body.String(), "e1")
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostEntry_BadPeriodPath() {
	w := suite.do(http.MethodPost, "/api/v1/periods/2025/13/entries", dto.PostEntryRequest{})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPosting.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestEditEntry_NotFound() {
	req := dto.PostEntryRequest{
		Kind:   domain.Expense,
		Day:    3,
		Name:   "x",
		Amount: decimal.NewFromInt(100),
	}

	suite.mockPosting.On("Edit", mock.Anything, domain.Period{Year: 2025, Month: 6}, 3, "missing", req).Return(apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodPut, "/api/v1/periods/2025/6/days/3/entries/missing", req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestDeleteEntry_NoContent() {
	suite.mockPosting.On("Delete", mock.Anything, domain.Period{Year: 2025, Month: 6}, 4, "e9").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/periods/2025/6/days/4/entries/e9", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestListMonth_DisplayOrder() {
	period := domain.Period{Year: 2025, Month: 6}
	snapshot := domain.MonthSnapshot{
		5:  {"a": {EntryID: "a", Kind: domain.Expense, Name: "early", Day: 5, Role: domain.RolePlain}},
		20: {"b": {EntryID: "b", Kind: domain.Expense, Name: "late", Day: 20, Role: domain.RolePlain}},
	}

	suite.mockSummary.On("MonthSnapshot", mock.Anything, period).Return(snapshot, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/periods/2025/6/entries", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MonthListingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2025-06", resp.Period)
	suite.Require().Len(resp.Days, 2)
	suite.Equal(20, resp.Days[0].Day)
	suite.Equal(5, resp.Days[1].Day)
	suite.mockSummary.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetSummary() {
	period := domain.Period{Year: 2025, Month: 6}
	summary := &domain.PeriodSummary{
		Period:    period,
		Carryover: decimal.NewFromInt(200000),
		Totals: domain.PeriodTotals{
			Income:  decimal.NewFromInt(1000000),
			Expense: decimal.NewFromInt(150000),
			Fixed:   decimal.NewFromInt(50000),
		},
		Balance:      decimal.NewFromInt(1000000),
		FixedApplied: true,
	}

	suite.mockSummary.On("PeriodSummary", mock.Anything, period).Return(summary, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/periods/2025/6/summary", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "fixedApplied")
	suite.mockSummary.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetCardUsage_PassesConfiguredGoals() {
	period := domain.Period{Year: 2025, Month: 6}
	usages := []domain.CardUsage{{Card: "신한카드", Used: decimal.NewFromInt(200000), Goal: suite.goals["신한카드"], Pct: 40}}

	suite.mockCardUsage.On("CardUsage", mock.Anything, period, suite.goals).Return(usages, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/periods/2025/6/card-usage", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "신한카드")
	suite.mockCardUsage.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestApplyFixed() {
	period := domain.Period{Year: 2025, Month: 6}

	suite.mockFixed.On("ApplyFixed", mock.Anything, period).Return(3, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/periods/2025/6/fixed-expenses/apply", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockFixed.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestApplyFixed_Unavailable() {
	period := domain.Period{Year: 2025, Month: 6}

	suite.mockFixed.On("ApplyFixed", mock.Anything, period).Return(0, apperrors.ErrUnavailable).Once()

	w := suite.do(http.MethodPost, "/api/v1/periods/2025/6/fixed-expenses/apply", nil)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.mockFixed.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestEntryHandler(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
