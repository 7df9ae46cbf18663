package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"markeep/config"
	"markeep/internal/domain/entity"
	"markeep/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMiddleware(t *testing.T) *AuthMiddleware {
	t.Helper()

	codec, err := auth.NewJWTCodec(&config.Config{
		Token: &config.TokenConfig{Secret: "middleware-test-secret", AccessTTL: time.Minute},
	})
	require.NoError(t, err)

	return NewAuthMiddleware(codec)
}

func issueToken(t *testing.T, account *entity.Account) string {
	t.Helper()

	codec, err := auth.NewJWTCodec(&config.Config{
		Token: &config.TokenConfig{Secret: "middleware-test-secret", AccessTTL: time.Minute},
	})
	require.NoError(t, err)

	token, err := codec.IssueAccess(account, false)
	require.NoError(t, err)

	return token
}

func runMiddleware(m echo.MiddlewareFunc, authorization string) (echo.Context, *httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := m(next)(c)

	return c, rec, err
}

func TestBearerToken(t *testing.T) {
	token, ok := BearerToken("Bearer abc.def.ghi")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)

	_, ok = BearerToken("")
	assert.False(t, ok)

	_, ok = BearerToken("Basic dXNlcjpwYXNz")
	assert.False(t, ok)

	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}

func TestAuthenticateLoadsClaims(t *testing.T) {
	m := newTestMiddleware(t)
	account := &entity.Account{
		ID:       uuid.New(),
		Email:    "alice@example.com",
		Nickname: "alice",
		Role:     entity.RoleAdmin,
	}

	c, rec, err := runMiddleware(m.Authenticate, "Bearer "+issueToken(t, account))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, account.ID, c.Get(ContextKeyAccountID))
	assert.Equal(t, "alice@example.com", c.Get(ContextKeyEmail))
	assert.Equal(t, entity.RoleAdmin, c.Get(ContextKeyRole))
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	m := newTestMiddleware(t)

	_, rec, err := runMiddleware(m.Authenticate, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	m := newTestMiddleware(t)

	_, rec, err := runMiddleware(m.Authenticate, "Bearer not-a-jwt")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	m := newTestMiddleware(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyRole, entity.RoleUser)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	err := m.RequireRole(entity.RoleAdmin)(next)(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin", nil), rec2)
	c2.Set(ContextKeyRole, entity.RoleAdmin)

	err = m.RequireRole(entity.RoleAdmin)(next)(c2)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec2.Code)
}
