// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultFolderTitle is the title of the folder every account starts with.
const DefaultFolderTitle = "Default Folder"

// Folder is a bookmark collection owned by an account. The auth core only
// touches folders once: every registration creates exactly one default folder
// inside the same transaction as the account itself.
type Folder struct {
	ID        uuid.UUID // Unique id for this folder.
	AccountID uuid.UUID // Owning account.
	Title     string    // Display title.
	CreatedAt time.Time // Timestamp of creation.
}
