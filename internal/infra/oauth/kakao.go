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
	kakaoTokenURL    = "https://kauth.kakao.com/oauth/token"
	kakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"
)

// kakaoClient implements service.IdentityProvider for Kakao OAuth 2.0.
type kakaoClient struct {
	clientID     string
	clientSecret string
	tokenURL     string
	userInfoURL  string
	httpClient   *http.Client
}

// NewKakaoClient builds the Kakao provider client from its immutable config.
func NewKakaoClient(cfg *config.Config) (service.IdentityProvider, error) {
	if cfg.KakaoOAuth == nil || cfg.KakaoOAuth.ClientID == "" {
		return nil, errors.New("kakao oauth client id must be provided")
	}

	client := &kakaoClient{
		clientID:     cfg.KakaoOAuth.ClientID,
		clientSecret: cfg.KakaoOAuth.ClientSecret,
		tokenURL:     cfg.KakaoOAuth.TokenURL,
		userInfoURL:  cfg.KakaoOAuth.UserInfoURL,
		httpClient:   newHTTPClient(),
	}
	if client.tokenURL == "" {
		client.tokenURL = kakaoTokenURL
	}
	if client.userInfoURL == "" {
		client.userInfoURL = kakaoUserInfoURL
	}

	return client, nil
}

// Provider returns which external identity source this client talks to.
func (c *kakaoClient) Provider() entity.Provider {
	return entity.ProviderKakao
}

// FetchProfile exchanges the authorization code for a provider access token,
// then reads email and nickname out of Kakao's nested account payload.
func (c *kakaoClient) FetchProfile(ctx context.Context, login service.ProviderLogin) (*service.Profile, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", login.Code)

	accessToken, err := exchangeCode(ctx, c.httpClient, c.tokenURL, form)
	if err != nil {
		return nil, errors.Wrap(err, "kakao code exchange failed")
	}

	var payload struct {
		KakaoAccount struct {
			Email   string `json:"email"`
			Profile struct {
				Nickname string `json:"nickname"`
			} `json:"profile"`
		} `json:"kakao_account"`
	}
	if err := fetchUserInfo(ctx, c.httpClient, c.userInfoURL, accessToken, &payload); err != nil {
		return nil, errors.Wrap(err, "kakao user info fetch failed")
	}

	if payload.KakaoAccount.Email == "" {
		return nil, domainerrors.ErrProviderExchangeFailed.WrapMessage("kakao profile carried no email")
	}

	return &service.Profile{
		Email:    payload.KakaoAccount.Email,
		Nickname: payload.KakaoAccount.Profile.Nickname,
	}, nil
}
