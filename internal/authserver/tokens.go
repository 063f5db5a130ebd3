package authserver

import (
	"sync"

	"github.com/google/uuid"

	"taskflow/internal/domain"
)

// tokens maps bearer tokens to users. Tokens never expire; restart to revoke.
type tokens struct {
	mu   sync.RWMutex
	byID map[string]User
}

func newTokens() *tokens { return &tokens{byID: make(map[string]User)} }

func (t *tokens) issue(u User) string {
	tok := uuid.NewString()
	t.mu.Lock()
	t.byID[tok] = u
	t.mu.Unlock()
	return tok
}

func (t *tokens) lookup(tok string) (User, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	u, ok := t.byID[tok]
	return u, ok
}

// taskBoard holds each user's task list in memory.
type taskBoard struct {
	mu     sync.RWMutex
	byUser map[string][]domain.Task
}

func newTaskBoard() *taskBoard { return &taskBoard{byUser: make(map[string][]domain.Task)} }

// seed gives a new account a starter list.
func (b *taskBoard) seed(userID string) {
	starter := []domain.Task{
		{ID: uuid.NewString(), Title: "Welcome to TaskFlow", Done: true},
		{ID: uuid.NewString(), Title: "Create your first task"},
		{ID: uuid.NewString(), Title: "Try dark mode"},
	}
	b.mu.Lock()
	b.byUser[userID] = starter
	b.mu.Unlock()
}

func (b *taskBoard) list(userID string) []domain.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Task, len(b.byUser[userID]))
	copy(out, b.byUser[userID])
	return out
}
