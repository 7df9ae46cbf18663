package service

import (
	"context"

	"markeep/internal/domain/entity"
)

// Profile is the normalized identity a provider hands back to the auth core.
type Profile struct {
	Email    string // Provider-reported email; the key used to reconcile with local accounts.
	Nickname string // Provider-reported display name.
}

// ProviderLogin is the raw material of one OAuth callback. Naver and Kakao
// deliver an authorization code; Google performs the exchange client-side and
// delivers the profile fields directly.
type ProviderLogin struct {
	Code     string // Single-use authorization code (naver, kakao).
	Email    string // Pre-fetched email (google).
	Nickname string // Pre-fetched display name (google).
}

// IdentityProvider exchanges one OAuth callback for a normalized profile.
// The exchange is linear and non-retrying: authorization codes are single-use,
// so any failure is terminal for the request.
type IdentityProvider interface {
	// Provider returns which external identity source this client talks to.
	Provider() entity.Provider

	// FetchProfile runs the provider's token exchange and userinfo fetch and
	// returns the normalized profile. Google's implementation is a trivial
	// pass-through with no network call.
	FetchProfile(ctx context.Context, login ProviderLogin) (*Profile, error)
}
