// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"markeep/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no refresh session exists for an account.
// Absence is an expected outcome for probing callers, not a failure.
var ErrSessionNotFound = errors.New("refresh session not found")

// RefreshSessionRepository maps an account id to its current refresh-token
// value. Each account owns at most one session.
type RefreshSessionRepository interface {
	// Upsert replaces the session token for the account, creating the record
	// if it does not exist. Single round trip; idempotent for the same
	// (accountID, token) pair, and last-write-wins under concurrent logins.
	Upsert(ctx context.Context, accountID uuid.UUID, token string) error

	// Get looks up the session for an account.
	Get(ctx context.Context, accountID uuid.UUID) (*entity.RefreshSession, error)

	// Delete revokes the session for an account, ending its renewable login.
	Delete(ctx context.Context, accountID uuid.UUID) error
}
