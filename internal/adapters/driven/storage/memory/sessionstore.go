// Package memory provides in-memory driven adapters for process-local
// state.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lectern-labs/lectern-cli/internal/core/domain"
	"github.com/lectern-labs/lectern-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// DefaultMaxHistory is the retained exchange cap per session.
const DefaultMaxHistory = 2

// SessionStore keeps bounded conversation history per session for the
// lifetime of the process.
type SessionStore struct {
	mu         sync.RWMutex
	sessions   map[string][]domain.Exchange
	maxHistory int
}

// NewSessionStore creates a session store. maxHistory <= 0 uses the
// default cap.
func NewSessionStore(maxHistory int) *SessionStore {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &SessionStore{
		sessions:   make(map[string][]domain.Exchange),
		maxHistory: maxHistory,
	}
}

// Create allocates a new session and returns its opaque id.
func (s *SessionStore) Create(_ context.Context) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = nil
	return id, nil
}

// History renders the retained exchanges as alternating "User:" and
// "Assistant:" lines, oldest first. Unknown ids yield an empty history
// rather than an error.
func (s *SessionStore) History(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exchanges := s.sessions[sessionID]
	if len(exchanges) == 0 {
		return "", nil
	}

	lines := make([]string, 0, len(exchanges)*2)
	for _, e := range exchanges {
		lines = append(lines, "User: "+e.Query, "Assistant: "+e.Answer)
	}
	return strings.Join(lines, "\n"), nil
}

// AddExchange appends one exchange and evicts the oldest past the cap.
func (s *SessionStore) AddExchange(_ context.Context, sessionID, query, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exchanges := append(s.sessions[sessionID], domain.Exchange{Query: query, Answer: answer})
	if len(exchanges) > s.maxHistory {
		exchanges = exchanges[len(exchanges)-s.maxHistory:]
	}
	s.sessions[sessionID] = exchanges
	return nil
}
