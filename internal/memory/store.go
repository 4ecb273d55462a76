package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session pairs one conversation memory with a lock that serializes turns.
type Session struct {
	ID string

	mu       sync.Mutex
	mem      *Memory
	lastUsed time.Time
}

// Do runs fn with exclusive access to the session memory.
func (s *Session) Do(fn func(*Memory) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.mem)
}

// Store holds the sessions of a running server, keyed by id. With a limit
// set, creating a session beyond it evicts the least recently used one.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     []Option
	now      func() time.Time
	limit    int
}

func NewStore(opts ...Option) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		opts:     opts,
		now:      time.Now,
	}
}

// SetLimit caps the number of sessions held. Zero means no cap.
func (st *Store) SetLimit(n int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.limit = n
}

// Session returns the session for id, creating it when missing. An empty
// id gets a fresh UUID.
func (st *Store) Session(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		if st.limit > 0 && len(st.sessions) >= st.limit {
			st.evictOldest()
		}
		s = &Session{ID: id, mem: New(st.opts...)}
		st.sessions[id] = s
	}
	s.lastUsed = st.now()
	return s
}

func (st *Store) Lookup(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than ttl and reports how many went.
func (st *Store) Sweep(ttl time.Duration) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := st.now().Add(-ttl)
	removed := 0
	for id, s := range st.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// evictOldest drops the least recently used session. Callers hold st.mu.
func (st *Store) evictOldest() {
	var oldest *Session
	for _, s := range st.sessions {
		if oldest == nil || s.lastUsed.Before(oldest.lastUsed) {
			oldest = s
		}
	}
	if oldest != nil {
		delete(st.sessions, oldest.ID)
	}
}
