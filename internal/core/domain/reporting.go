package domain

import "github.com/shopspring/decimal"

// PeriodTotals holds the aggregate buckets for a single period.
// Card reference entries contribute to none of them.
type PeriodTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Fixed   decimal.Decimal `json:"fixed"`
}

// PeriodSummary is the full dashboard figure set for a viewed period.
type PeriodSummary struct {
	Period       Period          `json:"period"`
	Carryover    decimal.Decimal `json:"carryover"` // net of all strictly earlier periods
	Totals       PeriodTotals    `json:"totals"`
	Balance      decimal.Decimal `json:"balance"` // carryover + income - expense - fixed
	FixedApplied bool            `json:"fixedApplied"`
}

// CardUsage reports actual plus pending billing for one card against its goal.
type CardUsage struct {
	Card string          `json:"card"`
	Used decimal.Decimal `json:"used"`
	Goal decimal.Decimal `json:"goal"`
	Pct  int             `json:"pct"` // capped at 100; 0 when no goal amount is set
}

// InstallmentProgress is one per-period occurrence of an installment plan,
// reported for the viewed period.
type InstallmentProgress struct {
	Name   string          `json:"name"`
	Start  Period          `json:"start"`
	Index  int             `json:"index"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"` // per-period share billed this period
	Total  decimal.Decimal `json:"total"`  // original purchase total
	Pct    int             `json:"pct"`    // plan progress, round(index/count*100)
}
