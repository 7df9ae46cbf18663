// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the root identity record. One row per registered email, whether
// the credential behind it is a local password or a trusted OAuth provider.
type Account struct {
	ID           uuid.UUID // Stable surrogate key, assigned on creation and never changed.
	Email        string    // Unique login identifier, stored case-sensitive.
	Nickname     string    // Display name shown to other users.
	PasswordHash string    // bcrypt hash. Placeholder (non-verifiable) for provider-only accounts.
	Role         Role      // Authorization role, defaults to RoleUser.
	AutoLogin    bool      // Last-known "stay signed in" preference.
	RefreshToken string    // Current refresh token value; empty when no renewable session exists.
	ProfileImage string    // Stored profile image path; empty when none was uploaded.
	JoinedAt     time.Time // Immutable registration timestamp.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// RefreshSession is the durable refresh-token record, keyed 1:1 by account id.
// It cannot outlive its Account and is only ever looked up by account id.
type RefreshSession struct {
	AccountID uuid.UUID // Exclusive owner of this session.
	Token     string    // Opaque random token value, replaced on every renewable login.
	UpdatedAt time.Time // Timestamp of the last rotation.
}
