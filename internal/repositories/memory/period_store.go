// Package memory provides store implementations backed by process memory.
// They serve tests and database-less runs; nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jmkang/household_ledger_app/internal/apperrors"
	"github.com/jmkang/household_ledger_app/internal/core/domain"
	portsrepo "github.com/jmkang/household_ledger_app/internal/core/ports/repositories"
	"github.com/jmkang/household_ledger_app/internal/repositories/watch"
)

// PeriodStore is an in-memory period store with change subscriptions.
type PeriodStore struct {
	mu   sync.RWMutex
	data domain.LedgerSnapshot
	hub  *watch.Hub
}

// NewPeriodStore creates an empty in-memory period store.
func NewPeriodStore() *PeriodStore {
	return &PeriodStore{
		data: make(domain.LedgerSnapshot),
		hub:  watch.NewHub(),
	}
}

// Ensure PeriodStore implements portsrepo.PeriodStore
var _ portsrepo.PeriodStore = (*PeriodStore)(nil)

// ReadMonth returns a copy of the period's snapshot. Periods with no entries
// yield an empty snapshot.
func (s *PeriodStore) ReadMonth(_ context.Context, period domain.Period) (domain.MonthSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.data[period]), nil
}

// ReadAll returns a copy of the entire ledger history.
func (s *PeriodStore) ReadAll(_ context.Context) (domain.LedgerSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make(domain.LedgerSnapshot, len(s.data))
	for period, snapshot := range s.data {
		all[period] = copySnapshot(snapshot)
	}
	return all, nil
}

// SaveEntry stores one entry under period/day.
func (s *PeriodStore) SaveEntry(_ context.Context, period domain.Period, day int, entry domain.Entry) error {
	s.mu.Lock()
	s.put(period, day, entry)
	s.mu.Unlock()

	s.notify(period)
	return nil
}

// UpdateEntry applies the editable fields in place, keeping role and
// installment metadata.
func (s *PeriodStore) UpdateEntry(_ context.Context, period domain.Period, day int, entryID string, fields domain.EntryFields) error {
	s.mu.Lock()
	entry, ok := s.data[period][day][entryID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: entry %s in %s day %02d", apperrors.ErrNotFound, entryID, period, day)
	}
	entry.Kind = fields.Kind
	entry.Name = fields.Name
	entry.Amount = fields.Amount
	entry.Category = fields.Category
	entry.Method = fields.Method
	s.data[period][day][entryID] = entry
	s.mu.Unlock()

	s.notify(period)
	return nil
}

// DeleteEntry removes exactly one entry.
func (s *PeriodStore) DeleteEntry(_ context.Context, period domain.Period, day int, entryID string) error {
	s.mu.Lock()
	if _, ok := s.data[period][day][entryID]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: entry %s in %s day %02d", apperrors.ErrNotFound, entryID, period, day)
	}
	s.remove(period, day, entryID)
	s.mu.Unlock()

	s.notify(period)
	return nil
}

// WriteMany applies a batch of "dd/entryID" keyed writes to one period.
// Nil values delete. The batch is applied atomically under the store lock.
func (s *PeriodStore) WriteMany(_ context.Context, period domain.Period, updates map[string]*domain.Entry) error {
	type parsedUpdate struct {
		day     int
		entryID string
		entry   *domain.Entry
	}
	parsed := make([]parsedUpdate, 0, len(updates))
	for path, entry := range updates {
		day, entryID, err := splitEntryPath(path)
		if err != nil {
			return err
		}
		parsed = append(parsed, parsedUpdate{day: day, entryID: entryID, entry: entry})
	}

	s.mu.Lock()
	for _, u := range parsed {
		if u.entry == nil {
			s.remove(period, u.day, u.entryID)
			continue
		}
		s.put(period, u.day, *u.entry)
	}
	s.mu.Unlock()

	s.notify(period)
	return nil
}

// Subscribe delivers full snapshots of the period after every committed write.
func (s *PeriodStore) Subscribe(_ context.Context, period domain.Period, fn func(domain.MonthSnapshot)) (func(), error) {
	return s.hub.Subscribe(period, fn), nil
}

// put inserts under the store lock.
func (s *PeriodStore) put(period domain.Period, day int, entry domain.Entry) {
	if s.data[period] == nil {
		s.data[period] = make(domain.MonthSnapshot)
	}
	if s.data[period][day] == nil {
		s.data[period][day] = make(map[string]domain.Entry)
	}
	s.data[period][day][entry.EntryID] = entry
}

// remove deletes under the store lock, pruning empty day and period maps so
// absence really means deletion.
func (s *PeriodStore) remove(period domain.Period, day int, entryID string) {
	delete(s.data[period][day], entryID)
	if len(s.data[period][day]) == 0 {
		delete(s.data[period], day)
	}
	if len(s.data[period]) == 0 {
		delete(s.data, period)
	}
}

// notify fans the period's fresh snapshot out to subscribers.
func (s *PeriodStore) notify(period domain.Period) {
	s.mu.RLock()
	snapshot := copySnapshot(s.data[period])
	s.mu.RUnlock()
	s.hub.Notify(period, snapshot)
}

// copySnapshot deep-copies the day and entry maps so readers never alias
// store internals. Entries themselves are value types.
func copySnapshot(snapshot domain.MonthSnapshot) domain.MonthSnapshot {
	out := make(domain.MonthSnapshot, len(snapshot))
	for day, entries := range snapshot {
		dayCopy := make(map[string]domain.Entry, len(entries))
		for id, e := range entries {
			dayCopy[id] = e
		}
		out[day] = dayCopy
	}
	return out
}

// splitEntryPath parses a "dd/entryID" batch key.
func splitEntryPath(path string) (int, string, error) {
	dayPart, entryID, ok := strings.Cut(path, "/")
	if !ok || entryID == "" {
		return 0, "", fmt.Errorf("%w: batch path must be dd/entryID, got %q", apperrors.ErrValidation, path)
	}
	day, err := strconv.Atoi(dayPart)
	if err != nil || day < 1 || day > 31 {
		return 0, "", fmt.Errorf("%w: invalid day in batch path %q", apperrors.ErrValidation, path)
	}
	return day, entryID, nil
}
