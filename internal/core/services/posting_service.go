package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmkang/household_ledger_app/internal/apperrors"
	"github.com/jmkang/household_ledger_app/internal/core/domain"
	portsrepo "github.com/jmkang/household_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/jmkang/household_ledger_app/internal/core/ports/services"
	"github.com/jmkang/household_ledger_app/internal/dto"
	"github.com/jmkang/household_ledger_app/internal/middleware"
	"github.com/jmkang/household_ledger_app/internal/utils/accounting"
)

var (
	ErrNameRequired      = errors.New("entry name is required")
	ErrAmountNotPositive = errors.New("entry amount must be positive")
	ErrDayOutOfRange     = errors.New("day is outside the period's day range")
	ErrEntryNotFound     = errors.New("entry not found in period")
)

// postingService decides which period(s) an entry lands in and materializes
// the resulting entries.
type postingService struct {
	store        portsrepo.PeriodStore
	cardKeywords []string
}

// NewPostingService creates a new PostingService. cardKeywords is the
// card-identifying vocabulary matched as substrings against method labels.
func NewPostingService(store portsrepo.PeriodStore, cardKeywords []string) portssvc.PostingSvcFacade {
	return &postingService{
		store:        store,
		cardKeywords: cardKeywords,
	}
}

// Ensure postingService implements the portssvc.PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// isCardMethod reports whether the payment method label names a card.
func (s *postingService) isCardMethod(method string) bool {
	if method == "" {
		return false
	}
	for _, kw := range s.cardKeywords {
		if kw != "" && strings.Contains(method, kw) {
			return true
		}
	}
	return false
}

// validatePost rejects bad input before any store write.
func (s *postingService) validatePost(origin domain.Period, req dto.PostEntryRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNameRequired)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if req.Day < 1 || req.Day > origin.Days() {
		return fmt.Errorf("%w: %w: day %d in %s", apperrors.ErrValidation, ErrDayOutOfRange, req.Day, origin)
	}
	return nil
}

// pendingWrite is one entry headed for a specific period and day.
type pendingWrite struct {
	period domain.Period
	day    int
	entry  domain.Entry
}

// Post computes the target period(s) for the request and writes the resulting
// entries. Card payments defer one period and bill on day 1; installment plans
// spread equal rounded shares across consecutive periods; every card purchase
// additionally leaves a reference annotation on its origination day.
// Implements portssvc.PostingSvcFacade
func (s *postingService) Post(ctx context.Context, origin domain.Period, req dto.PostEntryRequest) ([]domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.store == nil {
		return nil, apperrors.ErrUnavailable
	}
	if err := s.validatePost(origin, req); err != nil {
		return nil, err
	}

	isCard := s.isCardMethod(req.Method)
	baseOffset := 0
	billingDay := req.Day
	if isCard {
		baseOffset = 1
		billingDay = 1
	}

	count := req.InstallmentCount
	if count < 1 {
		count = 1
	}
	now := time.Now().UTC()
	total := req.Amount

	role := domain.RolePlain
	if isCard {
		role = domain.RoleCardDeferred
	}

	var writes []pendingWrite
	if count == 1 {
		writes = append(writes, pendingWrite{
			period: origin.AddMonths(baseOffset),
			day:    billingDay,
			entry: domain.Entry{
				EntryID:   uuid.NewString(),
				Kind:      req.Kind,
				Name:      req.Name,
				Amount:    total,
				Category:  req.Category,
				Method:    req.Method,
				Day:       billingDay,
				Role:      role,
				CreatedAt: now,
			},
		})
	} else {
		share := accounting.InstallmentShare(total, count)
		for i := 1; i <= count; i++ {
			writes = append(writes, pendingWrite{
				period: origin.AddMonths(baseOffset + (i - 1)),
				day:    billingDay,
				entry: domain.Entry{
					EntryID:  uuid.NewString(),
					Kind:     req.Kind,
					Name:     req.Name,
					Amount:   share,
					Category: req.Category,
					Method:   req.Method,
					Day:      billingDay,
					Role:     role,
					Installment: &domain.Installment{
						Count:       count,
						TotalAmount: total,
						Index:       i,
						Start:       origin,
					},
					CreatedAt: now,
				},
			})
		}
	}

	if isCard {
		// Reference annotation on the origination day, carrying the full
		// purchase total. Never aggregated.
		ref := domain.Entry{
			EntryID:   uuid.NewString(),
			Kind:      req.Kind,
			Name:      req.Name,
			Amount:    total,
			Category:  req.Category,
			Method:    req.Method,
			Day:       req.Day,
			Role:      domain.RoleCardReference,
			CreatedAt: now,
		}
		if count > 1 {
			ref.Installment = &domain.Installment{Count: count, TotalAmount: total}
		}
		writes = append(writes, pendingWrite{period: origin, day: req.Day, entry: ref})
	}

	// Writes are independent; a failed one leaves its siblings in place.
	created := make([]domain.Entry, 0, len(writes))
	var failures []error
	for _, w := range writes {
		if err := s.store.SaveEntry(ctx, w.period, w.day, w.entry); err != nil {
			logger.Error("Failed to save entry",
				slog.String("period", w.period.String()),
				slog.Int("day", w.day),
				slog.String("entry_id", w.entry.EntryID),
				slog.String("error", err.Error()))
			failures = append(failures, fmt.Errorf("period %s day %02d: %w", w.period, w.day, err))
			continue
		}
		created = append(created, w.entry)
	}

	if len(failures) > 0 {
		if len(created) == 0 {
			return nil, errors.Join(failures...)
		}
		return created, fmt.Errorf("%w: %w", apperrors.ErrPartialWrite, errors.Join(failures...))
	}

	logger.Info("Entries posted",
		slog.String("origin", origin.String()),
		slog.Int("count", len(created)),
		slog.Bool("card", isCard))
	return created, nil
}

// Edit updates one existing entry. Reference and deferred entries keep their
// role and installment metadata and are updated in place; plain and fixed
// entries are deleted and re-posted because the new fields may move them to a
// different period (e.g. the method became a card).
// Implements portssvc.PostingSvcFacade
func (s *postingService) Edit(ctx context.Context, period domain.Period, day int, entryID string, req dto.PostEntryRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.store == nil {
		return apperrors.ErrUnavailable
	}
	if err := s.validatePost(period, req); err != nil {
		return err
	}

	snapshot, err := s.store.ReadMonth(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to read period %s: %w", period, err)
	}
	existing, ok := snapshot[day][entryID]
	if !ok {
		return fmt.Errorf("%w: %w: %s in %s day %02d", apperrors.ErrNotFound, ErrEntryNotFound, entryID, period, day)
	}

	switch existing.Role {
	case domain.RoleCardReference, domain.RoleCardDeferred:
		fields := domain.EntryFields{
			Kind:     req.Kind,
			Name:     req.Name,
			Amount:   req.Amount,
			Category: req.Category,
			Method:   req.Method,
		}
		if err := s.store.UpdateEntry(ctx, period, day, entryID, fields); err != nil {
			return fmt.Errorf("failed to update entry %s: %w", entryID, err)
		}
		logger.Info("Entry updated in place",
			slog.String("period", period.String()),
			slog.String("entry_id", entryID),
			slog.String("role", string(existing.Role)))
		return nil
	default:
		if err := s.store.DeleteEntry(ctx, period, day, entryID); err != nil {
			return fmt.Errorf("failed to delete entry %s for re-post: %w", entryID, err)
		}
		if _, err := s.Post(ctx, period, req); err != nil {
			return fmt.Errorf("failed to re-post edited entry: %w", err)
		}
		return nil
	}
}

// Delete removes exactly one entry by id. Installment siblings in other
// periods and the paired reference entry are untouched.
// Implements portssvc.PostingSvcFacade
func (s *postingService) Delete(ctx context.Context, period domain.Period, day int, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.store == nil {
		return apperrors.ErrUnavailable
	}
	if err := s.store.DeleteEntry(ctx, period, day, entryID); err != nil {
		return fmt.Errorf("failed to delete entry %s in %s: %w", entryID, period, err)
	}
	logger.Info("Entry deleted",
		slog.String("period", period.String()),
		slog.Int("day", day),
		slog.String("entry_id", entryID))
	return nil
}
