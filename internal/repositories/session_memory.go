package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/career-architect/internal/models"
)

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]models.Session
	now      func() time.Time
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[uuid.UUID]models.Session),
		now:      time.Now,
	}
}

// Create implements SessionRepository.
func (r *memorySessionRepository) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = cloneSession(*session)
	return nil
}

// FindByID implements SessionRepository.
func (r *memorySessionRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok || !session.ExpiresAt.After(r.now()) {
		return nil, ErrSessionNotFound
	}
	out := cloneSession(session)
	return &out, nil
}

// Save implements SessionRepository.
func (r *memorySessionRepository) Save(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.ID]; !ok {
		return ErrSessionNotFound
	}
	r.sessions[session.ID] = cloneSession(*session)
	return nil
}

// Delete implements SessionRepository.
func (r *memorySessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// DeleteExpired implements SessionRepository.
func (r *memorySessionRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, session := range r.sessions {
		if !session.ExpiresAt.After(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

// FindByState implements SessionRepository. Oldest first.
func (r *memorySessionRepository) FindByState(_ context.Context, state models.SessionState, updatedBefore time.Time, limit int) ([]models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Session
	for _, session := range r.sessions {
		if session.State == state && session.UpdatedAt.Before(updatedBefore) {
			out = append(out, cloneSession(session))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.Before(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func cloneSession(s models.Session) models.Session {
	out := s
	out.Draft = s.Draft.Clone()
	out.Result = s.Result.Clone()
	return out
}
