package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshSessionModel mirrors the 'refresh_sessions' table. The account id is
// the primary key: each account owns at most one renewable session, and the
// token value is replaced in place on every renewable login.
type RefreshSessionModel struct {
	AccountID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token     string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshSessionModel) TableName() string {
	return "refresh_sessions"
}
