package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/career-architect/internal/models"
)

type gormSessionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormSessionRepository(db *gorm.DB) SessionRepository {
	return &gormSessionRepository{db: db, now: time.Now}
}

// Create implements SessionRepository.
func (r *gormSessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByID implements SessionRepository.
func (r *gormSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, r.now()).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

// Save implements SessionRepository.
func (r *gormSessionRepository) Save(ctx context.Context, session *models.Session) error {
	result := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", session.ID).
		Select("state", "step", "draft", "result", "error_message", "updated_at", "expires_at").
		Updates(session)

	if result.Error != nil {
		return fmt.Errorf("failed to save session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Delete implements SessionRepository.
func (r *gormSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete session: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteExpired implements SessionRepository.
func (r *gormSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// FindByState implements SessionRepository.
func (r *gormSessionRepository) FindByState(ctx context.Context, state models.SessionState, updatedBefore time.Time, limit int) ([]models.Session, error) {
	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Where("state = ? AND updated_at < ?", state, updatedBefore).
		Order("updated_at ASC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find sessions by state: %w", err)
	}
	return sessions, nil
}
