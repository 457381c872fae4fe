/*
Package cache provides the in-memory store for completed payroll reports.

PURPOSE:
  A payroll calculation is expensive enough (calendar fetch + matching)
  that its result is kept around for follow-up actions: export, ledger
  sync, confirmation dialogs. Reports are immutable once produced, so
  the cache only needs atomic insert and lookup; there are no
  update-in-place races.

DESIGN:
  - Explicitly constructed and injected, never package-global, so tests
    can build and reset their own instance.
  - Put is put-if-absent: a duplicate ID is rejected, not overwritten.
  - Store generates a fresh opaque ID (uuid) per report, so concurrent
    calculations each get a distinct key.
*/
package cache

import (
	"errors"
	"sync"
	"time"

	"github.com/fkcoding/payroll-engine/payroll"
	"github.com/google/uuid"
)

// ErrDuplicateID is returned by Put when the ID is already taken.
var ErrDuplicateID = errors.New("report id already exists")

// CachedReport is one stored report with its cache metadata.
type CachedReport struct {
	ID        string
	Report    payroll.PayrollReport
	CreatedAt time.Time
}

// Memory is a concurrency-safe report cache.
type Memory struct {
	mu      sync.RWMutex
	reports map[string]CachedReport
}

// NewMemory returns an empty cache.
func NewMemory() *Memory {
	return &Memory{reports: make(map[string]CachedReport)}
}

// Store inserts the report under a freshly generated ID and returns it.
func (m *Memory) Store(report payroll.PayrollReport) string {
	id := uuid.NewString()
	// A uuid collision is not a practical concern; Put keeps the
	// insert atomic regardless.
	_ = m.Put(id, report)
	return id
}

// Put inserts the report under id if the id is free.
func (m *Memory) Put(id string, report payroll.PayrollReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.reports[id]; exists {
		return ErrDuplicateID
	}
	m.reports[id] = CachedReport{ID: id, Report: report, CreatedAt: time.Now()}
	return nil
}

// Get returns the cached report for id, if present.
func (m *Memory) Get(id string) (CachedReport, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cached, ok := m.reports[id]
	return cached, ok
}

// Len returns the number of cached reports.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.reports)
}

// Clear drops all cached reports.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = make(map[string]CachedReport)
}
