package checkout

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
)

// Manager tracks the live checkout session of each visitor.
type Manager struct {
	mu       sync.Mutex
	sessions *lru.Cache
	deps     Dependencies
}

func NewManager(size int, deps Dependencies) (*Manager, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("checkout session cache: %w", err)
	}
	return &Manager{sessions: cache, deps: deps}, nil
}

// Begin replaces any existing session for the visitor with a fresh one.
func (m *Manager) Begin(visitorID string, c Cart) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.begin(visitorID, c)
}

func (m *Manager) begin(visitorID string, c Cart) *Session {
	s := NewSession(uuid.NewString(), c, m.deps)
	m.sessions.Add(visitorID, s)
	return s
}

// Get returns the visitor's current session, beginning one if needed. An
// existing session is rebound to c, since the cart registry may have
// replaced the visitor's store since the session began.
func (m *Manager) Get(visitorID string, c Cart) *Session {
	m.mu.Lock()
	v, ok := m.sessions.Get(visitorID)
	if !ok {
		defer m.mu.Unlock()
		return m.begin(visitorID, c)
	}
	m.mu.Unlock()

	// Rebinding waits for any in-flight payment on the session, so it
	// happens outside m.mu.
	s := v.(*Session)
	s.rebind(c)
	return s
}

func (m *Manager) End(visitorID string) {
	m.sessions.Remove(visitorID)
}

func (m *Manager) Len() int {
	return m.sessions.Len()
}
