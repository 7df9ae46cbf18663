// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"markeep/config"
	"markeep/internal/domain/entity"
	"markeep/internal/domain/service"
)

const (
	defaultAccessTTL = 15 * time.Minute

	// refreshTokenBytes is the entropy of an opaque refresh token. 32 random
	// bytes make guessing infeasible.
	refreshTokenBytes = 32
)

// jwtCodec implements service.TokenCodec with HS256-signed JWTs for access
// tokens and crypto/rand opaque strings for refresh tokens.
type jwtCodec struct {
	secret    []byte
	accessTTL time.Duration
}

// NewJWTCodec is the constructor for jwtCodec. The signing secret is loaded
// once here and held for the process lifetime.
func NewJWTCodec(cfg *config.Config) (service.TokenCodec, error) {
	if cfg.Token == nil || cfg.Token.Secret == "" {
		return nil, errors.New("token signing secret must be provided")
	}

	accessTTL := cfg.Token.AccessTTL
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}

	return &jwtCodec{
		secret:    []byte(cfg.Token.Secret),
		accessTTL: accessTTL,
	}, nil
}

// IssueAccess serializes the account snapshot and the requested autoLogin
// flag (not the stored preference) into a signed, self-expiring token.
func (c *jwtCodec) IssueAccess(account *entity.Account, autoLogin bool) (string, error) {
	now := time.Now()
	claims := &service.AccessClaims{
		AccountID: account.ID,
		Email:     account.Email,
		Nickname:  account.Nickname,
		Role:      account.Role,
		AutoLogin: autoLogin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return token, nil
}

// DecodeAccess parses and verifies an access token, returning its claims.
func (c *jwtCodec) DecodeAccess(tokenString string) (*service.AccessClaims, error) {
	claims := &service.AccessClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return c.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse access token")
	}
	if !token.Valid {
		return nil, errors.New("access token is not valid")
	}

	return claims, nil
}

// IsExpired fails closed: any parse, signature or expiry error collapses to
// true, so callers cannot tell a malformed token from an expired one.
func (c *jwtCodec) IsExpired(tokenString string) bool {
	_, err := c.DecodeAccess(tokenString)

	return err != nil
}

// IssueRefresh mints an opaque random token. It carries no claims; it is only
// a lookup key into the refresh-session store.
func (c *jwtCodec) IssueRefresh() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes for refresh token")
	}

	return hex.EncodeToString(buf), nil
}
