package repo

import (
	"context"
	"sync"

	perr "notifygate/internal/platform/errors"
	"notifygate/internal/services/api/preferences/domain"
)

// Memory is the default in-process store
// replace-by-key is atomic under the lock and reads hand out deep copies,
// so a concurrent reader never observes a partially-written record
type Memory struct {
	mu   sync.RWMutex
	byID map[string]domain.Preference
}

// NewMemory constructs an empty in-memory repo
func NewMemory() *Memory {
	return &Memory{byID: make(map[string]domain.Preference)}
}

// Get returns a copy of the stored record or a not-found error
func (m *Memory) Get(_ context.Context, userID string) (domain.Preference, error) {
	m.mu.RLock()
	p, ok := m.byID[userID]
	m.mu.RUnlock()
	if !ok {
		return domain.Preference{}, perr.NotFoundf("no preferences for user %s", userID)
	}
	return p.Clone(), nil
}

// Put fully replaces the record for userID
func (m *Memory) Put(_ context.Context, userID string, p domain.Preference) error {
	cp := p.Clone()
	m.mu.Lock()
	m.byID[userID] = cp
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored records
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}
