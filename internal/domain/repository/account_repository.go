// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"markeep/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository is the single source of truth for "does this email already
// have an account". The application layer depends on this interface, never on
// the concrete GORM implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Exists reports whether an account with the given email is registered.
	// It is the sole duplicate-registration check; a race between two
	// concurrent registrations is backstopped by the unique constraint on
	// the email column.
	Exists(ctx context.Context, email string) (bool, error)

	// Create persists a new account and assigns its id.
	Create(ctx context.Context, account *entity.Account) error

	// Save performs a full-record update of an existing account.
	Save(ctx context.Context, account *entity.Account) error
}
