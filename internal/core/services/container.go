package services

import (
	portsrepo "github.com/jmkang/household_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/jmkang/household_ledger_app/internal/core/ports/services"
	"github.com/jmkang/household_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. recurring may be nil.
func NewServiceContainer(cfg *config.Config, store portsrepo.PeriodStore, recurring portsrepo.RecurringExpenseReader) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Carryover first since the summary service depends on it.
	container.Carryover = NewCarryoverService(store)
	container.Summary = NewSummaryService(store, container.Carryover)
	container.Posting = NewPostingService(store, cfg.CardMethodKeywords)
	container.CardUsage = NewCardUsageService(store)
	container.Fixed = NewFixedExpenseService(store, recurring)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PostingSvcFacade      = (*postingService)(nil)
	_ portssvc.SummarySvcFacade      = (*summaryService)(nil)
	_ portssvc.CarryoverSvcFacade    = (*carryoverService)(nil)
	_ portssvc.CardUsageSvcFacade    = (*cardUsageService)(nil)
	_ portssvc.FixedExpenseSvcFacade = (*fixedExpenseService)(nil)
)
