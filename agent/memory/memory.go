// Package memory keeps per-conversation history in a bounded ring. The agent
// reads a snapshot before each run and appends the finished exchange after a
// successful one.
package memory

import (
	"strings"
	"sync"

	contractx "github.com/qtickhq/agent-gateway/agent/contract"
)

const defaultMaxTurns = 15

// Store is a thread-safe conversation history keyed by conversation id. Each
// conversation keeps at most maxTurns completed exchanges; appending past the
// cap evicts the oldest turn.
type Store struct {
	mu       sync.Mutex
	maxTurns int
	turns    map[string][]contractx.ConversationTurn
}

var _ contractx.MemoryStore = (*Store)(nil)

func NewStore(maxTurns int) *Store {
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	return &Store{
		maxTurns: maxTurns,
		turns:    make(map[string][]contractx.ConversationTurn),
	}
}

// GetHistory returns a copy of the stored turns, oldest first. Unknown
// conversations yield an empty slice.
func (s *Store) GetHistory(conversationID string) []contractx.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.turns[conversationID]
	if len(history) == 0 {
		return []contractx.ConversationTurn{}
	}
	return append([]contractx.ConversationTurn(nil), history...)
}

// Append stores one completed exchange, trimming surrounding whitespace and
// evicting the oldest turn once the window is full.
func (s *Store) Append(conversationID, userMessage, assistantMessage string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.turns[conversationID], contractx.ConversationTurn{
		User:      strings.TrimSpace(userMessage),
		Assistant: strings.TrimSpace(assistantMessage),
	})
	if len(history) > s.maxTurns {
		history = history[len(history)-s.maxTurns:]
	}
	s.turns[conversationID] = history
}

// Reset drops the history of one conversation, leaving others untouched.
func (s *Store) Reset(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.turns, conversationID)
}

// Clear removes every stored conversation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = make(map[string][]contractx.ConversationTurn)
}

// Values returns a deep copy of every stored history.
func (s *Store) Values() map[string][]contractx.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]contractx.ConversationTurn, len(s.turns))
	for id, history := range s.turns {
		out[id] = append([]contractx.ConversationTurn(nil), history...)
	}
	return out
}
