// Package memory keeps the bounded per-session conversation log that is
// replayed to the model on every turn.
package memory

import (
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const (
	DefaultCapacity      = 10
	DefaultContextWindow = 6
)

type Entry struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Memory is an append-only FIFO log. It is not safe for concurrent use;
// Session serializes access in the server.
type Memory struct {
	entries  []Entry
	capacity int
	window   int
	now      func() time.Time
	last     time.Time
}

type Option func(*Memory)

func WithCapacity(n int) Option {
	return func(m *Memory) {
		if n > 0 {
			m.capacity = n
		}
	}
}

func WithContextWindow(n int) Option {
	return func(m *Memory) {
		if n > 0 {
			m.window = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		m.now = now
	}
}

func New(opts ...Option) *Memory {
	m := &Memory{
		capacity: DefaultCapacity,
		window:   DefaultContextWindow,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.window > m.capacity {
		m.window = m.capacity
	}
	return m
}

// stamp returns the current time clamped so timestamps never go backwards.
func (m *Memory) stamp() time.Time {
	t := m.now()
	if t.Before(m.last) {
		t = m.last
	}
	m.last = t
	return t
}

// AddMessage appends an entry and evicts the oldest ones beyond capacity.
func (m *Memory) AddMessage(role Role, content string) {
	m.append(Entry{Role: role, Content: content, Timestamp: m.stamp()})
}

func (m *Memory) append(entries ...Entry) {
	m.entries = append(m.entries, entries...)
	if over := len(m.entries) - m.capacity; over > 0 {
		m.entries = append([]Entry(nil), m.entries[over:]...)
	}
}

// Context returns a copy of the most recent entries, at most the window size.
func (m *Memory) Context() []Entry {
	return tail(m.entries, m.window)
}

// Messages returns a copy of the whole log.
func (m *Memory) Messages() []Entry {
	return tail(m.entries, len(m.entries))
}

func (m *Memory) Len() int {
	return len(m.entries)
}

func (m *Memory) Clear() {
	m.entries = nil
}

func tail(entries []Entry, n int) []Entry {
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]Entry, n)
	copy(out, entries[len(entries)-n:])
	return out
}

// Turn is a user entry staged for one exchange. Nothing reaches the log
// until Commit, so an abandoned turn leaves the memory untouched.
type Turn struct {
	mem       *Memory
	user      Entry
	committed bool
}

// Begin stages a user entry for a new turn.
func (m *Memory) Begin(content string) *Turn {
	return &Turn{
		mem:  m,
		user: Entry{Role: RoleUser, Content: content, Timestamp: m.stamp()},
	}
}

// Context is the window the model sees during the turn: committed entries
// followed by the staged user entry.
func (t *Turn) Context() []Entry {
	pending := make([]Entry, 0, len(t.mem.entries)+1)
	pending = append(pending, t.mem.entries...)
	pending = append(pending, t.user)
	return tail(pending, t.mem.window)
}

// Commit appends the staged user entry and the reply together. Calling it
// more than once has no effect.
func (t *Turn) Commit(reply string) {
	if t.committed {
		return
	}
	t.committed = true
	t.mem.append(t.user, Entry{Role: RoleAssistant, Content: reply, Timestamp: t.mem.stamp()})
}
