package chat

import (
	"errors"
	"testing"
	"time"
)

func TestSessionStoreFlow(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(10 * time.Minute)

	store.Begin(42, "Как вас называть?")
	session, ok := store.Get(42)
	if !ok {
		t.Fatal("expected a session after Begin")
	}
	if session.State != StateAwaitingName {
		t.Fatalf("state = %s, want %s", session.State, StateAwaitingName)
	}
	if session.Prompt != "Как вас называть?" {
		t.Fatalf("prompt = %q", session.Prompt)
	}

	committed, err := store.Submit(42, "Мама")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if committed.State != StateCommitted || committed.Value != "Мама" {
		t.Fatalf("committed session = %+v", committed)
	}

	if _, err := store.Submit(42, "Папа"); !errors.Is(err, ErrUnexpectedInput) {
		t.Fatalf("second Submit = %v, want %v", err, ErrUnexpectedInput)
	}

	store.Clear(42)
	if _, ok := store.Get(42); ok {
		t.Fatal("session must be gone after Clear")
	}
}

func TestSessionStoreRejectsStrayInput(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(10 * time.Minute)
	if _, err := store.Submit(7, "сообщение без вопроса"); !errors.Is(err, ErrUnexpectedInput) {
		t.Fatalf("Submit without Begin = %v, want %v", err, ErrUnexpectedInput)
	}
}

func TestSessionStoreBeginReplacesExistingFlow(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(10 * time.Minute)
	store.Begin(9, "первый вопрос")
	if _, err := store.Submit(9, "ответ"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	store.Begin(9, "второй вопрос")
	session, ok := store.Get(9)
	if !ok || session.State != StateAwaitingName || session.Prompt != "второй вопрос" {
		t.Fatalf("session after re-Begin = %+v, ok=%v", session, ok)
	}
	if session.Value != "" {
		t.Fatalf("re-Begin must discard the old answer, got %q", session.Value)
	}
}

func TestSessionStoreExpiresAbandonedFlows(t *testing.T) {
	t.Parallel()

	current := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore(10 * time.Minute)
	store.now = func() time.Time { return current }

	store.Begin(5, "вопрос")
	current = current.Add(9 * time.Minute)
	if _, ok := store.Get(5); !ok {
		t.Fatal("session must survive inside the TTL")
	}

	current = current.Add(2 * time.Minute)
	if _, err := store.Submit(5, "слишком поздно"); !errors.Is(err, ErrUnexpectedInput) {
		t.Fatalf("Submit after expiry = %v, want %v", err, ErrUnexpectedInput)
	}
	if _, ok := store.Get(5); ok {
		t.Fatal("expired session must be pruned")
	}
}

func TestSessionStoreDefaultsTTL(t *testing.T) {
	t.Parallel()

	store := NewSessionStore(0)
	if store.ttl != 10*time.Minute {
		t.Fatalf("ttl = %s, want 10m default", store.ttl)
	}
}
