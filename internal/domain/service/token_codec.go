package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"markeep/internal/domain/entity"
)

// AccessClaims is the decoded content of an access token. It is produced
// fresh on every login, lives only for the token's validity window and is
// never persisted. It carries just enough identity to authorize requests;
// credential material such as the password hash never goes into a token.
type AccessClaims struct {
	AccountID uuid.UUID   `json:"sub"`
	Email     string      `json:"email"`
	Nickname  string      `json:"nickname"`
	Role      entity.Role `json:"role"`
	AutoLogin bool        `json:"autoLogin"`
	jwt.RegisteredClaims
}

// TokenCodec creates and validates signed access tokens and mints opaque
// refresh tokens. The signing key is process-wide configuration, loaded once
// at startup.
type TokenCodec interface {
	// IssueAccess serializes the account snapshot plus the requested
	// autoLogin flag into a signed, self-expiring token.
	IssueAccess(account *entity.Account, autoLogin bool) (string, error)

	// DecodeAccess parses and verifies an access token, returning its claims.
	DecodeAccess(token string) (*AccessClaims, error)

	// IsExpired fails closed: any decode, signature or expiry failure is
	// reported as true. Callers cannot distinguish malformed from expired.
	IsExpired(token string) bool

	// IssueRefresh mints a cryptographically random opaque string. It carries
	// no claims; it is only a lookup key into the refresh-session store.
	IssueRefresh() (string, error)
}
