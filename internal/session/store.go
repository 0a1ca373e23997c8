package session

import (
	"context"
	"sync"
	"time"

	"alltagslabor/internal/catalog"
	"alltagslabor/internal/domain"
	"alltagslabor/internal/logger"
	"alltagslabor/internal/util"

	"go.uber.org/zap"
)

const DefaultTTL = 30 * time.Minute

// Store keeps sessions in memory and expires them after an idle TTL.
type Store struct {
	ttl   time.Duration
	now   func() time.Time
	newID func() string

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		newID:    util.NewULID,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session over ds in category-browse mode.
func (st *Store) Create(ds *catalog.Dataset) *Session {
	s := newSession(st.newID(), ds, st.now())

	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()
	return s
}

// Get returns a live session and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, domain.NewSessionNotFoundError(id)
	}

	now := st.now()
	if st.expired(s, now) {
		st.remove(id, s)
		return nil, domain.NewSessionNotFoundError(id)
	}
	s.touch(now)
	return s, nil
}

// Delete discards a session.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return domain.NewSessionNotFoundError(id)
	}
	delete(st.sessions, id)
	return nil
}

// Len returns the number of stored sessions, expired ones included until the
// next sweep.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (st *Store) Sweep() int {
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if st.expired(s, now) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				logger.Get().Debug("Expired sessions removed", zap.Int("count", n), zap.Int("remaining", st.Len()))
			}
		}
	}
}

func (st *Store) expired(s *Session, now time.Time) bool {
	return now.Sub(s.idleSince()) > st.ttl
}

func (st *Store) remove(id string, s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.sessions[id] == s {
		delete(st.sessions, id)
	}
}
