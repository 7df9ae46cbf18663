// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"markeep/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// LoginInput defines the data required for a local password login.
type LoginInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	AutoLogin bool   `json:"autoLogin"`
}

// JoinInput defines the data required to register a new account.
type JoinInput struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Nickname string      `json:"nickname" validate:"required"`
	Role     entity.Role `json:"role"`
}

// OAuthLoginInput defines one OAuth callback. Naver and Kakao carry an
// authorization code; Google carries the already-fetched profile fields.
type OAuthLoginInput struct {
	Provider  entity.Provider `json:"provider"`
	Code      string          `json:"code"`
	Email     string          `json:"email"`
	Nickname  string          `json:"nickname"`
	AutoLogin bool            `json:"autoLogin"`
}

// RenewInput defines the data required to exchange a refresh token for a new
// access token.
type RenewInput struct {
	AccountID    uuid.UUID `json:"id" validate:"required"`
	RefreshToken string    `json:"refreshToken" validate:"required"`
}

// PasswordUpdateInput defines the explicit password-change request.
type PasswordUpdateInput struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// --- Output DTOs ---

// LoginOutput is the session payload returned by every successful login.
// RefreshToken is empty when no renewable session was established.
type LoginOutput struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Nickname     string    `json:"nickname"`
	AutoLogin    bool      `json:"autoLogin"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
}

// RenewOutput carries the freshly issued access token. The refresh token
// itself is left unchanged by renewal.
type RenewOutput struct {
	AccessToken string `json:"accessToken"`
}

// AuthUsecase defines the authentication operations the delivery layer
// depends on.
type AuthUsecase interface {
	// Login authenticates a local password credential and establishes a session.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Join registers a new account together with its default folder.
	Join(ctx context.Context, input *JoinInput) error

	// IsDuplicate reports whether the email already has an account.
	IsDuplicate(ctx context.Context, email string) (bool, error)

	// OAuthLogin reconciles an external provider identity with a local
	// account, creating or updating as needed.
	OAuthLogin(ctx context.Context, input *OAuthLoginInput) (*LoginOutput, error)

	// Renew exchanges a valid refresh token for a new access token.
	Renew(ctx context.Context, input *RenewInput) (*RenewOutput, error)

	// Logout revokes the account's renewable session.
	Logout(ctx context.Context, accountID uuid.UUID) error

	// UpdatePassword replaces the account's password hash.
	UpdatePassword(ctx context.Context, input *PasswordUpdateInput) error

	// IsTokenExpired reports whether an access token is expired or invalid.
	IsTokenExpired(token string) bool
}
