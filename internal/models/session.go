package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionState string

const (
	StateIdle    SessionState = "idle"
	StateLoading SessionState = "loading"
	StateResult  SessionState = "result"
)

// AnalysisFailedMessage is the only error text ever shown to the user.
const AnalysisFailedMessage = "Failed to generate career analysis. Please try again."

// Session holds one client's wizard draft and controller state.
type Session struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	State        SessionState       `gorm:"type:text;not null;default:'idle';index" json:"state"`
	Step         int                `gorm:"not null;default:1" json:"step"`
	Draft        UserProfile        `gorm:"type:jsonb;serializer:json" json:"draft"`
	Result       *ArchitectResponse `gorm:"type:jsonb;serializer:json" json:"result,omitempty"`
	ErrorMessage string             `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	ExpiresAt    time.Time          `gorm:"index" json:"expires_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// HasError reports whether the error banner should be shown.
func (s *Session) HasError() bool {
	return s.ErrorMessage != ""
}
