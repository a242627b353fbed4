package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jmkang/household_ledger_app/internal/apperrors"
	"github.com/jmkang/household_ledger_app/internal/core/domain"
	portsrepo "github.com/jmkang/household_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/jmkang/household_ledger_app/internal/core/ports/services"
)

// cardUsageService aggregates card spend against configured monthly goals.
type cardUsageService struct {
	store portsrepo.PeriodStore
}

// NewCardUsageService creates a new CardUsageService.
func NewCardUsageService(store portsrepo.PeriodStore) portssvc.CardUsageSvcFacade {
	return &cardUsageService{store: store}
}

// Ensure cardUsageService implements the portssvc.CardUsageSvcFacade interface
var _ portssvc.CardUsageSvcFacade = (*cardUsageService)(nil)

// CardUsage sums, per card with a configured goal, the deferred entries
// billing this period plus the reference entries foreshadowing next period's
// bill (the plan total for installments). The same purchase therefore shows
// up once as actual and once as pending usage in different periods; that dual
// accounting is the dashboard's intended "billed + upcoming" reading.
// Implements portssvc.CardUsageSvcFacade
func (s *cardUsageService) CardUsage(ctx context.Context, period domain.Period, goals map[string]decimal.Decimal) ([]domain.CardUsage, error) {
	if s.store == nil {
		return nil, apperrors.ErrUnavailable
	}

	snapshot, err := s.store.ReadMonth(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to read period %s: %w", period, err)
	}

	used := make(map[string]decimal.Decimal, len(goals))
	for _, dayEntries := range snapshot {
		for _, e := range dayEntries {
			if e.Method == "" {
				continue
			}
			switch e.Role {
			case domain.RoleCardDeferred:
				used[e.Method] = used[e.Method].Add(e.Amount)
			case domain.RoleCardReference:
				amt := e.Amount
				if e.IsInstallment() {
					amt = e.Installment.TotalAmount
				}
				used[e.Method] = used[e.Method].Add(amt)
			}
		}
	}

	// Only cards with a configured goal are reported.
	cards := make([]string, 0, len(goals))
	for card := range goals {
		cards = append(cards, card)
	}
	sort.Strings(cards)

	usages := make([]domain.CardUsage, 0, len(cards))
	for _, card := range cards {
		goal := goals[card]
		u := domain.CardUsage{Card: card, Used: used[card], Goal: goal}
		if goal.IsPositive() {
			pct := u.Used.Div(goal).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
			if pct > 100 {
				pct = 100
			}
			u.Pct = int(pct)
		}
		usages = append(usages, u)
	}
	return usages, nil
}
