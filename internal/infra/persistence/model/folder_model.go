package model

import (
	"time"

	"github.com/google/uuid"
)

// FolderModel mirrors the 'folders' table.
type FolderModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (FolderModel) TableName() string {
	return "folders"
}
