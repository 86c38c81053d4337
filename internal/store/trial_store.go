// internal/store/trial_store.go
package store

import (
	"sync"
	"time"

	appErrors "github.com/cosmos-order/trial-engine/internal/errors"
	"github.com/cosmos-order/trial-engine/internal/model"
)

// TrialStore is the in-memory table of trials, keyed by invitation id.
// All mutation goes through With or ForEach so the at-most-once campaign
// invariant holds even when cron jobs overlap.
type TrialStore struct {
	mu     sync.RWMutex
	trials map[string]*model.TrialUser
	now    func() time.Time
}

// NewTrialStore creates an empty store with an injected clock.
func NewTrialStore(now func() time.Time) *TrialStore {
	if now == nil {
		now = time.Now
	}
	return &TrialStore{
		trials: make(map[string]*model.TrialUser),
		now:    now,
	}
}

// Now returns the store's current time.
func (s *TrialStore) Now() time.Time {
	return s.now()
}

// Create inserts a new trial. Duplicate invitation ids are rejected with
// ErrTrialExists rather than silently overwritten.
func (s *TrialStore) Create(t *model.TrialUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trials[t.InvitationID]; ok {
		return appErrors.NewTrialExists(t.InvitationID)
	}
	s.trials[t.InvitationID] = t
	return nil
}

// Get fetches a trial by invitation id, nil when unknown. It returns a
// deep copy: the live record is only ever touched under the store lock,
// so readers never race a sweep. Mutate via With.
func (s *TrialStore) Get(invitationID string) *model.TrialUser {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trials[invitationID]
	if !ok {
		return nil
	}
	return t.Clone()
}

// View runs fn against the live trial under the read lock, for derived
// reads that should not pay for a full copy. fn must not mutate the
// trial or retain it past the call.
func (s *TrialStore) View(invitationID string, fn func(*model.TrialUser)) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.trials[invitationID]
	if !ok {
		return false
	}
	fn(t)
	return true
}

// With runs fn against the trial under the store lock. Returns false
// without calling fn when the invitation id is unknown.
func (s *TrialStore) With(invitationID string, fn func(*model.TrialUser)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trials[invitationID]
	if !ok {
		return false
	}
	fn(t)
	return true
}

// ForEach runs fn for every trial while holding the store lock, so a
// whole sweep is serialized against other sweeps and writers.
func (s *TrialStore) ForEach(fn func(*model.TrialUser)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.trials {
		fn(t)
	}
}

// Len returns the number of stored trials.
func (s *TrialStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trials)
}
