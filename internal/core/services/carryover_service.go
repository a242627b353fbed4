package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jmkang/household_ledger_app/internal/apperrors"
	"github.com/jmkang/household_ledger_app/internal/core/domain"
	portsrepo "github.com/jmkang/household_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/jmkang/household_ledger_app/internal/core/ports/services"
	"github.com/jmkang/household_ledger_app/internal/utils/accounting"
)

// carryoverService computes the running net balance of all periods before the
// viewed one. It deliberately keeps no incremental state: the full history is
// re-read and re-summed on every call, trading recomputation cost for
// correctness at personal-ledger scale.
type carryoverService struct {
	store portsrepo.PeriodStore
}

// NewCarryoverService creates a new CarryoverService.
func NewCarryoverService(store portsrepo.PeriodStore) portssvc.CarryoverSvcFacade {
	return &carryoverService{store: store}
}

// Ensure carryoverService implements the portssvc.CarryoverSvcFacade interface
var _ portssvc.CarryoverSvcFacade = (*carryoverService)(nil)

// Carryover returns the cumulative net of every period strictly before upto.
// Implements portssvc.CarryoverSvcFacade
func (s *carryoverService) Carryover(ctx context.Context, upto domain.Period) (decimal.Decimal, error) {
	if s.store == nil {
		return decimal.Zero, apperrors.ErrUnavailable
	}

	history, err := s.store.ReadAll(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read ledger history: %w", err)
	}

	cumulative := decimal.Zero
	for period, snapshot := range history {
		if !period.Before(upto) {
			continue
		}
		for _, dayEntries := range snapshot {
			for _, e := range dayEntries {
				cumulative = cumulative.Add(accounting.SignedAmount(e))
			}
		}
	}
	return cumulative, nil
}
