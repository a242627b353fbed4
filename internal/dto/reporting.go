package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jmkang/household_ledger_app/internal/core/domain"
)

// PeriodSummaryResponse defines the dashboard figures returned for a period.
type PeriodSummaryResponse struct {
	Period       string          `json:"period"`
	Carryover    decimal.Decimal `json:"carryover"`
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Fixed        decimal.Decimal `json:"fixed"`
	Balance      decimal.Decimal `json:"balance"`
	FixedApplied bool            `json:"fixedApplied"`
}

// ToPeriodSummaryResponse converts a domain.PeriodSummary to its DTO.
func ToPeriodSummaryResponse(s *domain.PeriodSummary) PeriodSummaryResponse {
	return PeriodSummaryResponse{
		Period:       s.Period.String(),
		Carryover:    s.Carryover,
		Income:       s.Totals.Income,
		Expense:      s.Totals.Expense,
		Fixed:        s.Totals.Fixed,
		Balance:      s.Balance,
		FixedApplied: s.FixedApplied,
	}
}

// CardUsageResponse defines one card's usage against its monthly goal.
type CardUsageResponse struct {
	Card string          `json:"card"`
	Used decimal.Decimal `json:"used"`
	Goal decimal.Decimal `json:"goal"`
	Pct  int             `json:"pct"`
}

// ToCardUsageResponses converts domain card usage rows to their DTOs.
func ToCardUsageResponses(usages []domain.CardUsage) []CardUsageResponse {
	responses := make([]CardUsageResponse, len(usages))
	for i, u := range usages {
		responses[i] = CardUsageResponse{Card: u.Card, Used: u.Used, Goal: u.Goal, Pct: u.Pct}
	}
	return responses
}

// InstallmentProgressResponse defines one installment occurrence in a period.
type InstallmentProgressResponse struct {
	Name   string          `json:"name"`
	Start  string          `json:"start"`
	Index  int             `json:"index"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
	Total  decimal.Decimal `json:"total"`
	Pct    int             `json:"pct"`
}

// ToInstallmentProgressResponses converts domain installment rows to DTOs.
func ToInstallmentProgressResponses(rows []domain.InstallmentProgress) []InstallmentProgressResponse {
	responses := make([]InstallmentProgressResponse, len(rows))
	for i, r := range rows {
		responses[i] = InstallmentProgressResponse{
			Name:   r.Name,
			Start:  r.Start.String(),
			Index:  r.Index,
			Count:  r.Count,
			Amount: r.Amount,
			Total:  r.Total,
			Pct:    r.Pct,
		}
	}
	return responses
}

// ApplyFixedResponse reports the outcome of a fixed-expense application.
type ApplyFixedResponse struct {
	Period  string `json:"period"`
	Applied int    `json:"applied"`
}
