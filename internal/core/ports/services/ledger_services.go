package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jmkang/household_ledger_app/internal/core/domain"
	"github.com/jmkang/household_ledger_app/internal/dto"
)

// PostingSvc defines the operations that decide where entries land.
type PostingSvc interface {
	// Post materializes the entry (or installment plan plus card reference)
	// for a purchase or income that occurred in the origin period. It returns
	// the entries that were actually written; on a partially failed plan the
	// returned error wraps apperrors.ErrPartialWrite and the successful
	// writes stay in place.
	Post(ctx context.Context, origin domain.Period, req dto.PostEntryRequest) ([]domain.Entry, error)

	// Edit updates one existing entry. Card reference and card deferred
	// entries are updated in place with role and installment metadata
	// preserved; anything else is deleted and re-posted from scratch because
	// its target period may change.
	Edit(ctx context.Context, period domain.Period, day int, entryID string, req dto.PostEntryRequest) error

	// Delete removes exactly one entry. Installment siblings and the paired
	// reference entry are left alone.
	Delete(ctx context.Context, period domain.Period, day int, entryID string) error
}

// PostingSvcFacade combines all posting interfaces.
type PostingSvcFacade interface {
	PostingSvc
}

// SummarySvc computes per-period aggregate buckets.
type SummarySvc interface {
	// Summarize folds one period snapshot into its totals, skipping card
	// reference entries.
	Summarize(snapshot domain.MonthSnapshot) domain.PeriodTotals

	// MonthSnapshot reads the period's current full snapshot.
	MonthSnapshot(ctx context.Context, period domain.Period) (domain.MonthSnapshot, error)

	// PeriodSummary produces the full dashboard figures for a period,
	// including carryover and running balance.
	PeriodSummary(ctx context.Context, period domain.Period) (*domain.PeriodSummary, error)

	// ListInstallments reports the installment plan occurrences billing in
	// the period, in plan order.
	ListInstallments(ctx context.Context, period domain.Period) ([]domain.InstallmentProgress, error)
}

// SummarySvcFacade combines all summary interfaces.
type SummarySvcFacade interface {
	SummarySvc
}

// CarryoverSvc computes the running net balance of all history before a period.
type CarryoverSvc interface {
	// Carryover walks every period strictly before upto and returns the
	// cumulative income minus expense minus fixed. Recomputed in full on
	// every call.
	Carryover(ctx context.Context, upto domain.Period) (decimal.Decimal, error)
}

// CarryoverSvcFacade combines all carryover interfaces.
type CarryoverSvcFacade interface {
	CarryoverSvc
}

// CardUsageSvc aggregates billed and pending card spend against monthly goals.
type CardUsageSvc interface {
	// CardUsage reports usage for every card present in goals, in card name
	// order. Cards without a configured goal are not reported.
	CardUsage(ctx context.Context, period domain.Period, goals map[string]decimal.Decimal) ([]domain.CardUsage, error)
}

// CardUsageSvcFacade combines all card usage interfaces.
type CardUsageSvcFacade interface {
	CardUsageSvc
}

// FixedExpenseSvc materializes the recurring-expense list into a period.
type FixedExpenseSvc interface {
	// ApplyFixed replaces the period's fixed-expense entries with one entry
	// per active item of the resolved recurring list. Idempotent. Returns the
	// number of entries written.
	ApplyFixed(ctx context.Context, period domain.Period) (int, error)

	// ApplyFixedList is ApplyFixed with an explicit list, bypassing the
	// resolved collaborator.
	ApplyFixedList(ctx context.Context, period domain.Period, list []domain.RecurringExpense) (int, error)
}

// FixedExpenseSvcFacade combines all fixed-expense interfaces.
type FixedExpenseSvcFacade interface {
	FixedExpenseSvc
}
