// Package session keeps in-memory conversation contexts, one per session id.
// Contexts exist for the lifetime of the process; durability is out of scope
// for a conference that lasts two days.
package session

import (
	"sync"
	"time"

	"github.com/firebase/genkit/go/ai"
)

// Context is one conversation's accumulated state.
type Context struct {
	SessionID string
	UserID    string
	Messages  []*ai.Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store holds conversation contexts keyed by session id.
type Store struct {
	mu          sync.Mutex
	contexts    map[string]*Context
	maxMessages int
	now         func() time.Time
}

// NewStore creates a session store. maxMessages bounds each context's
// history; older messages are dropped in pairs so the window always starts
// at a user turn.
func NewStore(maxMessages int) *Store {
	return &Store{
		contexts:    make(map[string]*Context),
		maxMessages: maxMessages,
		now:         time.Now,
	}
}

// GetOrCreate returns the context for a session id, creating it on first use.
func (s *Store) GetOrCreate(sessionID, userID string) *Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(sessionID, userID)
}

func (s *Store) getOrCreateLocked(sessionID, userID string) *Context {
	if c, ok := s.contexts[sessionID]; ok {
		return c
	}
	c := &Context{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	s.contexts[sessionID] = c
	return c
}

// AppendExchange records one user/model exchange on a session, creating the
// context on first use.
func (s *Store) AppendExchange(sessionID, userID, userText, modelText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreateLocked(sessionID, userID)
	c.Messages = append(c.Messages,
		ai.NewUserMessage(ai.NewTextPart(userText)),
		ai.NewModelMessage(ai.NewTextPart(modelText)),
	)
	if len(c.Messages) > s.maxMessages {
		drop := len(c.Messages) - s.maxMessages
		if drop%2 != 0 {
			drop++
		}
		c.Messages = c.Messages[drop:]
	}
	c.UpdatedAt = s.now()
}

// History returns a copy of a session's messages; nil for unknown sessions.
func (s *Store) History(sessionID string) []*ai.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contexts[sessionID]
	if !ok {
		return nil
	}
	out := make([]*ai.Message, len(c.Messages))
	copy(out, c.Messages)
	return out
}

// Count returns the number of live session contexts.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contexts)
}
