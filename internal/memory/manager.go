package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yogeshramchandani7/cr360-backend/internal/catalog"
)

// Session pairs a memory with its own lock so concurrent requests for
// the same session serialize while different sessions proceed in
// parallel.
type Session struct {
	ID string

	mu  sync.Mutex
	mem *Memory
}

// Lock takes the session lock and returns the memory plus an unlock func.
func (s *Session) Lock() (*Memory, func()) {
	s.mu.Lock()
	return s.mem, s.mu.Unlock
}

// Manager owns all live sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	maxTurns int
	patterns catalog.Patterns
}

// NewManager creates a session manager. maxTurns bounds each session's
// window in question/answer pairs.
func NewManager(maxTurns int, patterns catalog.Patterns) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		maxTurns: maxTurns,
		patterns: patterns,
	}
}

// Get returns the session with the given ID, creating it on first use.
// An empty ID allocates a new session with a generated ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}

	mem, err := New(m.maxTurns, m.patterns)
	if err != nil {
		return nil, err
	}
	s := &Session{ID: id, mem: mem}
	m.sessions[id] = s
	return s, nil
}

// Reset clears a session's memory if it exists.
func (m *Manager) Reset(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return
	}
	mem, unlock := s.Lock()
	defer unlock()
	mem.Clear()
}

// Remove deletes a session entirely.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
