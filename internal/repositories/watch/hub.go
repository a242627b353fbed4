// Package watch provides the in-process change notification hub shared by the
// period store implementations. The ledger has a single logical writer per
// session, so local fan-out after committed writes is sufficient to drive
// snapshot recomputation.
package watch

import (
	"sync"

	"github.com/jmkang/household_ledger_app/internal/core/domain"
)

// Hub fans full-period snapshots out to subscribers of that period.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[domain.Period]map[int]func(domain.MonthSnapshot)
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[domain.Period]map[int]func(domain.MonthSnapshot))}
}

// Subscribe registers fn for one period and returns its unsubscribe function.
// Unsubscribing twice is harmless.
func (h *Hub) Subscribe(period domain.Period, fn func(domain.MonthSnapshot)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	id := h.next
	if h.subs[period] == nil {
		h.subs[period] = make(map[int]func(domain.MonthSnapshot))
	}
	h.subs[period][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if fns, ok := h.subs[period]; ok {
			delete(fns, id)
			if len(fns) == 0 {
				delete(h.subs, period)
			}
		}
	}
}

// Notify delivers the snapshot to every subscriber of the period. Callers pass
// a freshly read snapshot; subscribers treat it as authoritative.
func (h *Hub) Notify(period domain.Period, snapshot domain.MonthSnapshot) {
	h.mu.Lock()
	fns := make([]func(domain.MonthSnapshot), 0, len(h.subs[period]))
	for _, fn := range h.subs[period] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}
