package oauth

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"markeep/config"
	"markeep/internal/domain/entity"
	domainerrors "markeep/internal/domain/errors"
	"markeep/internal/domain/service"
)

const (
	naverTokenURL    = "https://nid.naver.com/oauth2.0/token"
	naverUserInfoURL = "https://openapi.naver.com/v1/nid/me"
)

// naverClient implements service.IdentityProvider for Naver OAuth 2.0.
// Naver's token exchange carries a CSRF state value and a service_provider
// marker on top of the standard authorization_code parameters.
type naverClient struct {
	clientID     string
	clientSecret string
	state        string
	tokenURL     string
	userInfoURL  string
	httpClient   *http.Client
}

// NewNaverClient builds the Naver provider client from its immutable config.
func NewNaverClient(cfg *config.Config) (service.IdentityProvider, error) {
	if cfg.NaverOAuth == nil || cfg.NaverOAuth.ClientID == "" || cfg.NaverOAuth.ClientSecret == "" {
		return nil, errors.New("naver oauth client id and secret must be provided")
	}

	client := &naverClient{
		clientID:     cfg.NaverOAuth.ClientID,
		clientSecret: cfg.NaverOAuth.ClientSecret,
		state:        cfg.NaverOAuth.State,
		tokenURL:     cfg.NaverOAuth.TokenURL,
		userInfoURL:  cfg.NaverOAuth.UserInfoURL,
		httpClient:   newHTTPClient(),
	}
	if client.tokenURL == "" {
		client.tokenURL = naverTokenURL
	}
	if client.userInfoURL == "" {
		client.userInfoURL = naverUserInfoURL
	}

	return client, nil
}

// Provider returns which external identity source this client talks to.
func (c *naverClient) Provider() entity.Provider {
	return entity.ProviderNaver
}

// FetchProfile exchanges the authorization code for a provider access token,
// then fetches the normalized profile from the Naver userinfo endpoint.
func (c *naverClient) FetchProfile(ctx context.Context, login service.ProviderLogin) (*service.Profile, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", login.Code)
	form.Set("state", c.state)
	form.Set("service_provider", "NAVER")

	accessToken, err := exchangeCode(ctx, c.httpClient, c.tokenURL, form)
	if err != nil {
		return nil, errors.Wrap(err, "naver code exchange failed")
	}

	var payload struct {
		Response struct {
			Email    string `json:"email"`
			Nickname string `json:"nickname"`
		} `json:"response"`
	}
	if err := fetchUserInfo(ctx, c.httpClient, c.userInfoURL, accessToken, &payload); err != nil {
		return nil, errors.Wrap(err, "naver user info fetch failed")
	}

	if payload.Response.Email == "" {
		return nil, domainerrors.ErrProviderExchangeFailed.WrapMessage("naver profile carried no email")
	}

	return &service.Profile{
		Email:    payload.Response.Email,
		Nickname: payload.Response.Nickname,
	}, nil
}
