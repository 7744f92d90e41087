// Package session keeps the per-session "terms accepted" flag. Each session owns
// its own flag; nothing is shared between sessions.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ktg84478/erovista/internal/observability"
)

// Session is a snapshot of one session's state.
type Session struct {
	ID              string
	CreatedAt       time.Time
	TermsAcceptedAt time.Time // zero until accepted
}

// Store is a bounded, concurrency-safe LRU of sessions.
type Store struct {
	ttl        time.Duration
	maxEntries int
	clock      clockwork.Clock
	metrics    *observability.Metrics

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // most recently used
	tail    *entry // least recently used
}

type entry struct {
	value Session
	prev  *entry
	next  *entry
}

// NewStore creates a session store. A ttl of 0 means acceptances never expire.
// Pass nil for clock to use the real clock.
func NewStore(maxEntries int, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      clock,
		metrics:    metrics,
		entries:    make(map[string]*entry),
	}
}

// Create starts a new session with terms not yet accepted.
func (s *Store) Create() Session {
	sess := Session{ID: uuid.NewString(), CreatedAt: s.clock.Now()}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(sess)
	return sess
}

// Get returns the session for id, if the store still holds it.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return Session{}, false
	}
	s.moveToFront(e)
	return e.value, true
}

// Accept records terms acceptance for id, creating the session when the id is
// unknown or empty. It returns the updated session.
func (s *Store) Accept(id string) Session {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[id]; ok {
		e.value.TermsAcceptedAt = now
		s.moveToFront(e)
		s.metrics.TermsAccepted.Inc()
		return e.value
	}

	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	sess := Session{ID: id, CreatedAt: now, TermsAcceptedAt: now}
	s.put(sess)
	s.metrics.TermsAccepted.Inc()
	return sess
}

// Accepted reports whether id has accepted the terms and the acceptance has not expired.
func (s *Store) Accepted(id string) bool {
	sess, ok := s.Get(id)
	if !ok || sess.TermsAcceptedAt.IsZero() {
		return false
	}
	if s.ttl == 0 {
		return true
	}
	return s.clock.Since(sess.TermsAcceptedAt) < s.ttl
}

// Len returns the number of sessions held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// put inserts or replaces a session. Callers hold mu.
func (s *Store) put(sess Session) {
	if e, ok := s.entries[sess.ID]; ok {
		e.value = sess
		s.moveToFront(e)
		return
	}

	e := &entry{value: sess}
	s.entries[sess.ID] = e
	s.addToFront(e)

	if len(s.entries) > s.maxEntries {
		s.evictTail()
	}
	s.metrics.SessionsActive.Set(float64(len(s.entries)))
}

func (s *Store) moveToFront(e *entry) {
	if e == s.head {
		return
	}
	s.remove(e)
	s.addToFront(e)
}

func (s *Store) addToFront(e *entry) {
	e.next = s.head
	e.prev = nil
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *Store) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
}

func (s *Store) evictTail() {
	if s.tail == nil {
		return
	}
	delete(s.entries, s.tail.value.ID)
	s.remove(s.tail)
}
