package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"markeep/config"
	"markeep/internal/domain/entity"
	"markeep/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKakaoClient_FetchProfile(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "kakao-client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "auth-code", r.PostForm.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"kakao-access-token"}`))
	}))
	defer tokenSrv.Close()

	userInfoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer kakao-access-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":12345,"kakao_account":{"email":"bob@kakao.com","profile":{"nickname":"bob"}}}`))
	}))
	defer userInfoSrv.Close()

	cfg := &config.Config{
		KakaoOAuth: &config.OAuthProviderConfig{
			ClientID:     "kakao-client-id",
			ClientSecret: "kakao-client-secret",
			TokenURL:     tokenSrv.URL,
			UserInfoURL:  userInfoSrv.URL,
		},
	}
	client, err := NewKakaoClient(cfg)
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderKakao, client.Provider())

	profile, err := client.FetchProfile(context.Background(), service.ProviderLogin{Code: "auth-code"})
	require.NoError(t, err)
	assert.Equal(t, "bob@kakao.com", profile.Email)
	assert.Equal(t, "bob", profile.Nickname)
}

func TestKakaoClient_UserInfoFailureIsTerminal(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"tok"}`))
	}))
	defer tokenSrv.Close()

	userInfoSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer userInfoSrv.Close()

	cfg := &config.Config{
		KakaoOAuth: &config.OAuthProviderConfig{
			ClientID:    "kakao-client-id",
			TokenURL:    tokenSrv.URL,
			UserInfoURL: userInfoSrv.URL,
		},
	}
	client, err := NewKakaoClient(cfg)
	require.NoError(t, err)

	_, err = client.FetchProfile(context.Background(), service.ProviderLogin{Code: "auth-code"})
	assert.Error(t, err)
}

func TestNewKakaoClient_RequiresClientID(t *testing.T) {
	_, err := NewKakaoClient(&config.Config{})
	assert.Error(t, err)
}
