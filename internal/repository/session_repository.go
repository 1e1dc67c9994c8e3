package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akashduggal/passr-backend/internal/model"
)

var ErrNotFound = errors.New("session not found")

// SessionRepository stores live conversation sessions. Sessions are
// screen-scoped and never persisted; the store is purely in-memory.
type SessionRepository interface {
	Create(ctx context.Context, cv *model.Conversation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteIdleBefore(ctx context.Context, cutoff time.Time) int
	Count(ctx context.Context) int
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*model.Conversation
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{sessions: make(map[uuid.UUID]*model.Conversation)}
}

func (r *sessionRepository) Create(_ context.Context, cv *model.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[cv.ID] = cv
	return nil
}

func (r *sessionRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cv, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cv, nil
}

func (r *sessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

// DeleteIdleBefore removes sessions whose last activity predates cutoff and
// returns how many were dropped. Backstop for screens that unmounted without
// saying goodbye.
func (r *sessionRepository) DeleteIdleBefore(_ context.Context, cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, cv := range r.sessions {
		cv.Lock()
		idle := cv.LastActive.Before(cutoff)
		cv.Unlock()
		if idle {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

func (r *sessionRepository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
