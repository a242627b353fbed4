package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmkang/household_ledger_app/internal/apperrors"
	"github.com/jmkang/household_ledger_app/internal/core/domain"
	portsrepo "github.com/jmkang/household_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/jmkang/household_ledger_app/internal/core/ports/services"
)

// summaryService computes per-period aggregate buckets from full snapshots.
// It holds no state between calls; every figure is re-derived from the store.
type summaryService struct {
	store        portsrepo.PeriodStore
	carryoverSvc portssvc.CarryoverSvcFacade
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(store portsrepo.PeriodStore, carryoverSvc portssvc.CarryoverSvcFacade) portssvc.SummarySvcFacade {
	return &summaryService{
		store:        store,
		carryoverSvc: carryoverSvc,
	}
}

// Ensure summaryService implements the portssvc.SummarySvcFacade interface
var _ portssvc.SummarySvcFacade = (*summaryService)(nil)

// Summarize folds a period snapshot into its totals. Card reference entries
// contribute to nothing; fixed expenses go to their own bucket, never plain
// expense.
// Implements portssvc.SummarySvcFacade
func (s *summaryService) Summarize(snapshot domain.MonthSnapshot) domain.PeriodTotals {
	totals := domain.PeriodTotals{}
	for _, dayEntries := range snapshot {
		for _, e := range dayEntries {
			if !e.CountsTowardTotals() {
				continue
			}
			switch {
			case e.Role == domain.RoleFixedExpense:
				totals.Fixed = totals.Fixed.Add(e.Amount)
			case e.Kind == domain.Income:
				totals.Income = totals.Income.Add(e.Amount)
			default:
				totals.Expense = totals.Expense.Add(e.Amount)
			}
		}
	}
	return totals
}

// MonthSnapshot reads the period's current full snapshot.
// Implements portssvc.SummarySvcFacade
func (s *summaryService) MonthSnapshot(ctx context.Context, period domain.Period) (domain.MonthSnapshot, error) {
	if s.store == nil {
		return nil, apperrors.ErrUnavailable
	}
	snapshot, err := s.store.ReadMonth(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to read period %s: %w", period, err)
	}
	return snapshot, nil
}

// PeriodSummary reads the period snapshot, aggregates it and combines the
// result with the carryover of all earlier history.
// Implements portssvc.SummarySvcFacade
func (s *summaryService) PeriodSummary(ctx context.Context, period domain.Period) (*domain.PeriodSummary, error) {
	if s.store == nil {
		return nil, apperrors.ErrUnavailable
	}

	snapshot, err := s.store.ReadMonth(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to read period %s: %w", period, err)
	}

	carryover, err := s.carryoverSvc.Carryover(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to compute carryover for %s: %w", period, err)
	}

	totals := s.Summarize(snapshot)
	summary := &domain.PeriodSummary{
		Period:       period,
		Carryover:    carryover,
		Totals:       totals,
		Balance:      carryover.Add(totals.Income).Sub(totals.Expense).Sub(totals.Fixed),
		FixedApplied: hasFixedApplied(snapshot),
	}
	return summary, nil
}

// ListInstallments collects the installment plan occurrences billing in the
// period, ordered by plan start, name and index.
// Implements portssvc.SummarySvcFacade
func (s *summaryService) ListInstallments(ctx context.Context, period domain.Period) ([]domain.InstallmentProgress, error) {
	if s.store == nil {
		return nil, apperrors.ErrUnavailable
	}

	snapshot, err := s.store.ReadMonth(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to read period %s: %w", period, err)
	}

	rows := make([]domain.InstallmentProgress, 0)
	for _, dayEntries := range snapshot {
		for _, e := range dayEntries {
			if !e.CountsTowardTotals() || !e.IsInstallment() {
				continue
			}
			inst := e.Installment
			rows = append(rows, domain.InstallmentProgress{
				Name:   e.Name,
				Start:  inst.Start,
				Index:  inst.Index,
				Count:  inst.Count,
				Amount: e.Amount,
				Total:  inst.TotalAmount,
				Pct:    roundPct(inst.Index, inst.Count),
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Start != rows[j].Start {
			return rows[i].Start.Before(rows[j].Start)
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Index < rows[j].Index
	})
	return rows, nil
}

// hasFixedApplied reports whether any fixed expense entry exists in the
// snapshot. Drives the UI's apply/re-apply button state.
func hasFixedApplied(snapshot domain.MonthSnapshot) bool {
	for _, dayEntries := range snapshot {
		for _, e := range dayEntries {
			if e.Role == domain.RoleFixedExpense {
				return true
			}
		}
	}
	return false
}

// roundPct is round(num/den*100) for positive ints.
func roundPct(num, den int) int {
	if den <= 0 {
		return 0
	}
	return (num*100 + den/2) / den
}
