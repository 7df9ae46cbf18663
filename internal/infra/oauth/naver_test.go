package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"markeep/config"
	"markeep/internal/domain/entity"
	domainerrors "markeep/internal/domain/errors"
	"markeep/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNaverTestClient(t *testing.T, tokenURL, userInfoURL string) service.IdentityProvider {
	t.Helper()

	cfg := &config.Config{
		NaverOAuth: &config.OAuthProviderConfig{
			ClientID:     "naver-client-id",
			ClientSecret: "naver-client-secret",
			State:        "csrf-state",
			TokenURL:     tokenURL,
			UserInfoURL:  userInfoURL,
		},
	}

	client, err := NewNaverClient(cfg)
	require.NoError(t, err)

	return client
}

func TestNaverClient_FetchProfile(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "naver-client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "naver-client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))
		assert.Equal(t, "csrf-state", r.PostForm.Get("state"))
		assert.Equal(t, "NAVER", r.PostForm.Get("service_provider"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"naver-access-token","token_type":"bearer"}`))
	}))
	defer tokenSrv.Close()

	userInfoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer naver-access-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"resultcode":"00","response":{"email":"alice@naver.com","nickname":"alice"}}`))
	}))
	defer userInfoSrv.Close()

	client := newNaverTestClient(t, tokenSrv.URL, userInfoSrv.URL)
	assert.Equal(t, entity.ProviderNaver, client.Provider())

	profile, err := client.FetchProfile(context.Background(), service.ProviderLogin{Code: "auth-code"})
	require.NoError(t, err)
	assert.Equal(t, "alice@naver.com", profile.Email)
	assert.Equal(t, "alice", profile.Nickname)
}

func TestNaverClient_ExchangeFailureIsTerminal(t *testing.T) {
	calls := 0
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer tokenSrv.Close()

	client := newNaverTestClient(t, tokenSrv.URL, "http://unused.invalid")

	_, err := client.FetchProfile(context.Background(), service.ProviderLogin{Code: "used-code"})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "OAUTH_FAILED", appErr.ErrorCode())

	// Authorization codes are single-use; no retry must happen.
	assert.Equal(t, 1, calls)
}

func TestNaverClient_MissingEmailRejected(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"tok"}`))
	}))
	defer tokenSrv.Close()

	userInfoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"nickname":"no-email"}}`))
	}))
	defer userInfoSrv.Close()

	client := newNaverTestClient(t, tokenSrv.URL, userInfoSrv.URL)

	_, err := client.FetchProfile(context.Background(), service.ProviderLogin{Code: "auth-code"})
	assert.Error(t, err)
}

func TestNewNaverClient_RequiresCredentials(t *testing.T) {
	_, err := NewNaverClient(&config.Config{})
	assert.Error(t, err)

	_, err = NewNaverClient(&config.Config{NaverOAuth: &config.OAuthProviderConfig{ClientID: "id"}})
	assert.Error(t, err)
}
