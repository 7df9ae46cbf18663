package oauth

import (
	"context"

	"markeep/internal/domain/entity"
	domainerrors "markeep/internal/domain/errors"
	"markeep/internal/domain/service"
)

// googleClient implements service.IdentityProvider for Google Sign-In.
// The code exchange happens client-side, so the server receives the profile
// fields directly; this client is a pass-through with no network call.
type googleClient struct{}

// NewGoogleClient builds the Google provider client.
func NewGoogleClient() service.IdentityProvider {
	return &googleClient{}
}

// Provider returns which external identity source this client talks to.
func (c *googleClient) Provider() entity.Provider {
	return entity.ProviderGoogle
}

// FetchProfile hands back the profile the caller already obtained from Google.
func (c *googleClient) FetchProfile(_ context.Context, login service.ProviderLogin) (*service.Profile, error) {
	if login.Email == "" {
		return nil, domainerrors.ErrProviderExchangeFailed.WrapMessage("google login carried no email")
	}

	return &service.Profile{
		Email:    login.Email,
		Nickname: login.Nickname,
	}, nil
}
