// Package chat holds per-caregiver state for multi-step text-input flows,
// the kind where the bot asks a question and the next plain message is the
// answer.
package chat

import (
	"errors"
	"sync"
	"time"
)

type State string

const (
	StateIdle         State = "idle"
	StateAwaitingName State = "awaiting_name"
	StateCommitted    State = "committed"
)

var ErrUnexpectedInput = errors.New("no input expected in current state")

type Session struct {
	State     State
	Prompt    string
	Value     string
	UpdatedAt time.Time
}

// SessionStore keeps input-flow sessions keyed by caregiver telegram id.
// Entries expire after the TTL so an abandoned prompt does not linger
// forever; expired entries are pruned on every touch rather than by a
// background sweeper.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[int64]Session

	now func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[int64]Session),
		now:      time.Now,
	}
}

// Begin puts the caregiver into the awaiting-name state, replacing whatever
// flow they were in before.
func (store *SessionStore) Begin(telegramID int64, prompt string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.pruneLocked()
	store.sessions[telegramID] = Session{
		State:     StateAwaitingName,
		Prompt:    prompt,
		UpdatedAt: store.now(),
	}
}

// Submit records the caregiver's answer. It fails unless the session is
// awaiting input, so stray messages outside a flow are rejected instead of
// being swallowed into stale state.
func (store *SessionStore) Submit(telegramID int64, value string) (Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.pruneLocked()
	session, ok := store.sessions[telegramID]
	if !ok || session.State != StateAwaitingName {
		return Session{}, ErrUnexpectedInput
	}

	session.State = StateCommitted
	session.Value = value
	session.UpdatedAt = store.now()
	store.sessions[telegramID] = session
	return session, nil
}

func (store *SessionStore) Get(telegramID int64) (Session, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.pruneLocked()
	session, ok := store.sessions[telegramID]
	return session, ok
}

func (store *SessionStore) Clear(telegramID int64) {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.sessions, telegramID)
}

func (store *SessionStore) pruneLocked() {
	threshold := store.now().Add(-store.ttl)
	for telegramID, session := range store.sessions {
		if session.UpdatedAt.Before(threshold) {
			delete(store.sessions, telegramID)
		}
	}
}
