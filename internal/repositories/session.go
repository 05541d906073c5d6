package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/career-architect/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores sessions until they expire. Implementations
// treat an expired session as missing and return copies, never shared
// pointers.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	FindByState(ctx context.Context, state models.SessionState, updatedBefore time.Time, limit int) ([]models.Session, error)
}
