package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nextgen-ti/kbportal/internal/audit"
	"github.com/nextgen-ti/kbportal/internal/chat"
)

// DefaultTTL is how long an idle session survives.
const DefaultTTL = 30 * time.Minute

type entry struct {
	sess     *Session
	lastSeen time.Time
}

// Store keeps sessions in memory and expires idle ones.
type Store struct {
	opts Options
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewStore creates an empty store. A non-positive ttl uses DefaultTTL.
func NewStore(opts Options, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if opts.Selector == nil {
		opts.Selector = chat.DefaultSelector()
	}
	return &Store{
		opts:     opts,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// Create starts a new session with a random id.
func (s *Store) Create(ctx context.Context) *Session {
	sess := newSession(uuid.New().String(), &s.opts)

	s.mu.Lock()
	s.sessions[sess.id] = &entry{sess: sess, lastSeen: s.now()}
	s.mu.Unlock()

	sess.record(ctx, audit.Entry{
		ActorType: audit.ActorVisitor,
		ActorID:   sess.id,
		Action:    audit.ActionSessionStarted,
		Scope:     audit.ScopeSession,
		ScopeID:   sess.id,
	})
	return sess
}

// Get returns a live session and marks it as used.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok || s.expired(e) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	e.lastSeen = s.now()
	return e.sess, nil
}

// GetOrCreate returns the session for id, or a fresh one when id is unknown
// or expired. created reports which happened.
func (s *Store) GetOrCreate(ctx context.Context, id string) (sess *Session, created bool) {
	if id != "" {
		if sess, err := s.Get(id); err == nil {
			return sess, false
		}
	}
	return s.Create(ctx), true
}

// Delete closes and forgets a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		e.sess.Close()
	}
}

// Len returns the number of tracked sessions, expired ones included until
// the next sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep closes and removes sessions idle for longer than the TTL. It returns
// how many were removed.
func (s *Store) Sweep(ctx context.Context) int {
	var stale []*Session

	s.mu.Lock()
	for id, e := range s.sessions {
		if s.expired(e) {
			stale = append(stale, e.sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		sess.Close()
		sess.record(ctx, audit.Entry{
			ActorType: audit.ActorSystem,
			ActorID:   "janitor",
			Action:    audit.ActionSessionExpired,
			Scope:     audit.ScopeSession,
			ScopeID:   sess.id,
		})
	}
	if len(stale) > 0 && s.opts.Logger != nil {
		s.opts.Logger.Debug("expired idle sessions", "count", len(stale))
	}
	return len(stale)
}

// Run sweeps on the given interval until ctx is cancelled, then closes every
// remaining session.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.CloseAll()
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// CloseAll closes and removes every session.
func (s *Store) CloseAll() {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*entry)
	s.mu.Unlock()

	for _, e := range all {
		e.sess.Close()
	}
}

func (s *Store) expired(e *entry) bool {
	return s.now().Sub(e.lastSeen) > s.ttl
}
