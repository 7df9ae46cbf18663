// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"markeep/internal/domain/entity"
)

// FolderRepository is the thin collaborator the auth core needs from the
// bookmark domain: registration creates the new account's default folder in
// the same transaction as the account row.
type FolderRepository interface {
	// Create persists a new folder and assigns its id.
	Create(ctx context.Context, folder *entity.Folder) error
}
