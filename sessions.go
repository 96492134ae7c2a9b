package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Session represents a connected SSH user playing in their own game.
type Session struct {
	ID      string
	Name    string
	Human   string // which colors the user plays, as in Config.Human
	Started time.Time
}

// SessionManager tracks live sessions.
type SessionManager struct {
	sessions map[string]*Session
	counter  int
	logger   *log.Logger
	mu       sync.RWMutex
}

func NewSessionManager(logger *log.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Add registers a new session for name and returns it.
func (sm *SessionManager) Add(name, human string) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.counter++
	s := &Session{
		ID:      fmt.Sprintf("session_%d", sm.counter),
		Name:    name,
		Human:   human,
		Started: time.Now(),
	}
	sm.sessions[s.ID] = s
	sm.logger.Info("session started", "id", s.ID, "user", name, "active", len(sm.sessions))
	return s
}

// Remove forgets the session. Unknown IDs are ignored.
func (sm *SessionManager) Remove(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s, ok := sm.sessions[id]
	if !ok {
		return
	}
	delete(sm.sessions, id)
	sm.logger.Info("session ended", "id", id, "user", s.Name,
		"duration", time.Since(s.Started).Round(time.Second), "active", len(sm.sessions))
}

func (sm *SessionManager) Get(id string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	return s, ok
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
