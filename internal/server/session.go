package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"adpilot/internal/agent"
)

// Session is one conversation: its transcript plus the rolling context
// threaded from turn to turn. A session processes turns strictly
// sequentially; the busy flag gates concurrent submissions.
type Session struct {
	ID           string              `json:"id"`
	Messages     []agent.ChatMessage `json:"messages"`
	Context      agent.Context       `json:"context"`
	CreatedAt    time.Time           `json:"createdAt"`
	LastActivity time.Time           `json:"lastActivity"`

	mu   sync.Mutex
	busy bool
}

// Sessions is the in-memory session store. Nothing is persisted; process
// restart drops every conversation.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create registers a new session seeded with the given opening message.
func (s *Sessions) Create(welcome *agent.ChatMessage) *Session {
	now := s.now()
	sess := &Session{
		ID:           uuid.NewString(),
		Context:      agent.NewContext(),
		CreatedAt:    now,
		LastActivity: now,
	}
	if welcome != nil {
		sess.Messages = append(sess.Messages, *welcome)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session with the given id, or nil.
func (s *Sessions) Get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// BeginTurn claims the session for one turn. It reports false when a
// turn is already in flight.
func (sess *Session) BeginTurn() bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.busy {
		return false
	}
	sess.busy = true
	return true
}

// EndTurn releases the turn gate.
func (sess *Session) EndTurn() {
	sess.mu.Lock()
	sess.busy = false
	sess.mu.Unlock()
}

// Append records messages on the transcript and stamps activity.
func (sess *Session) Append(now time.Time, msgs ...agent.ChatMessage) {
	sess.mu.Lock()
	sess.Messages = append(sess.Messages, msgs...)
	sess.LastActivity = now
	sess.mu.Unlock()
}

// SetContext replaces the rolling context after a successful turn.
func (sess *Session) SetContext(ctx agent.Context) {
	sess.mu.Lock()
	sess.Context = ctx
	sess.mu.Unlock()
}

// Snapshot returns a copy safe to serialize while turns run elsewhere.
func (sess *Session) Snapshot() Session {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return Session{
		ID:           sess.ID,
		Messages:     append([]agent.ChatMessage(nil), sess.Messages...),
		Context:      sess.Context,
		CreatedAt:    sess.CreatedAt,
		LastActivity: sess.LastActivity,
	}
}
