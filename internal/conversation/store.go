// Package conversation keeps per-conversation message history in memory.
// Contexts live for the process lifetime unless cleared or idle-evicted;
// nothing is persisted, and a restart starts every conversation fresh.
package conversation

import (
	"sync"
	"time"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation transcript.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type entry struct {
	turns       []Turn
	intents     []string
	lastTouched time.Time
}

// Store is a process-wide map of conversation id to transcript. Reads and
// writes are guarded for concurrent conversations; writers to the SAME id
// must be serialized by the caller to keep turn order meaningful.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry

	ttl    time.Duration
	ticker *time.Ticker
	done   chan struct{}
}

// NewStore creates a store that evicts contexts idle longer than ttl. A zero
// ttl disables eviction entirely.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	if ttl > 0 {
		s.ticker = time.NewTicker(time.Minute)
		go s.janitor()
	}
	return s
}

// Append adds one turn to the conversation, creating it on first use.
func (s *Store) Append(id, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		e = &entry{}
		s.entries[id] = e
	}
	e.turns = append(e.turns, Turn{Role: role, Content: content})
	e.lastTouched = time.Now()
}

// Recent returns the last n turns. Unknown ids yield an empty history, never
// an error.
func (s *Store) Recent(id string, n int) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok || n <= 0 {
		return nil
	}
	turns := e.turns
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out
}

// History returns the full stored transcript.
func (s *Store) History(id string) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	out := make([]Turn, len(e.turns))
	copy(out, e.turns)
	return out
}

// RecordIntent appends a detected intent to the conversation's intent history.
func (s *Store) RecordIntent(id, intentTag string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		e = &entry{}
		s.entries[id] = e
	}
	e.intents = append(e.intents, intentTag)
	e.lastTouched = time.Now()
}

// Intents returns the recorded intent history for a conversation.
func (s *Store) Intents(id string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return nil
	}
	out := make([]string, len(e.intents))
	copy(out, e.intents)
	return out
}

// Clear removes one conversation.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Count reports the number of live conversations.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stop halts the eviction janitor.
func (s *Store) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.done)
	}
}

func (s *Store) janitor() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			cutoff := time.Now().Add(-s.ttl)
			s.mu.Lock()
			for id, e := range s.entries {
				if e.lastTouched.Before(cutoff) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
