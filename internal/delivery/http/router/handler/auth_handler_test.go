package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"markeep/internal/delivery/http/middleware"
	"markeep/internal/delivery/http/validator"
	domainerrors "markeep/internal/domain/errors"
	"markeep/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUsecase records calls and returns canned results.
type stubUsecase struct {
	loginOut  *usecase.LoginOutput
	loginErr  error
	joinErr   error
	duplicate bool
	expired   bool

	loggedOut []uuid.UUID
}

func (s *stubUsecase) Login(_ context.Context, _ *usecase.LoginInput) (*usecase.LoginOutput, error) {
	return s.loginOut, s.loginErr
}

func (s *stubUsecase) Join(_ context.Context, _ *usecase.JoinInput) error {
	return s.joinErr
}

func (s *stubUsecase) IsDuplicate(_ context.Context, _ string) (bool, error) {
	return s.duplicate, nil
}

func (s *stubUsecase) OAuthLogin(_ context.Context, _ *usecase.OAuthLoginInput) (*usecase.LoginOutput, error) {
	return s.loginOut, s.loginErr
}

func (s *stubUsecase) Renew(_ context.Context, _ *usecase.RenewInput) (*usecase.RenewOutput, error) {
	return &usecase.RenewOutput{AccessToken: "renewed"}, nil
}

func (s *stubUsecase) Logout(_ context.Context, accountID uuid.UUID) error {
	s.loggedOut = append(s.loggedOut, accountID)

	return nil
}

func (s *stubUsecase) UpdatePassword(_ context.Context, _ *usecase.PasswordUpdateInput) error {
	return nil
}

func (s *stubUsecase) IsTokenExpired(string) bool {
	return s.expired
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newTestHandler(stub *stubUsecase) *AuthHandler {
	return NewAuthHandler(stub, slog.New(slog.DiscardHandler))
}

func TestAuthHandlerLogin(t *testing.T) {
	stub := &stubUsecase{
		loginOut: &usecase.LoginOutput{
			ID:          uuid.New(),
			Email:       "alice@example.com",
			Nickname:    "alice",
			AccessToken: "signed-access-token",
		},
	}
	h := newTestHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret-password"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), "signed-access-token")
}

func TestAuthHandlerLoginValidation(t *testing.T) {
	h := newTestHandler(&stubUsecase{})

	// Not an email address.
	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"not-an-email","password":"secret-password"}`)

	err := h.Login(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthHandlerLoginFailurePropagates(t *testing.T) {
	stub := &stubUsecase{loginErr: domainerrors.ErrBadCredentials.WrapMessage("login failed")}
	h := newTestHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"wrong"}`)

	err := h.Login(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrBadCredentials)
}

func TestAuthHandlerJoin(t *testing.T) {
	h := newTestHandler(&stubUsecase{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/join",
		`{"email":"alice@example.com","password":"secret-password","nickname":"alice"}`)

	require.NoError(t, h.Join(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAuthHandlerJoinShortPassword(t *testing.T) {
	h := newTestHandler(&stubUsecase{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/join",
		`{"email":"alice@example.com","password":"short","nickname":"alice"}`)

	err := h.Join(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthHandlerCheckDuplicate(t *testing.T) {
	h := newTestHandler(&stubUsecase{duplicate: true})

	c, rec := newTestContext(t, http.MethodGet, "/auth/join/duplicate?email=alice@example.com", "")

	require.NoError(t, h.CheckDuplicate(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data map[string]bool `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Data["duplicate"])
}

func TestAuthHandlerCheckDuplicateRequiresEmail(t *testing.T) {
	h := newTestHandler(&stubUsecase{})

	c, rec := newTestContext(t, http.MethodGet, "/auth/join/duplicate", "")

	require.NoError(t, h.CheckDuplicate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlerOAuthLoginRejectsUnknownProvider(t *testing.T) {
	h := newTestHandler(&stubUsecase{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/login/github", `{"code":"abc"}`)
	c.SetParamNames("provider")
	c.SetParamValues("github")

	err := h.OAuthLogin(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProviderUnknown)
}

func TestAuthHandlerOAuthLogin(t *testing.T) {
	stub := &stubUsecase{
		loginOut: &usecase.LoginOutput{
			Email:        "alice@example.com",
			AccessToken:  "signed-access-token",
			RefreshToken: "opaque-refresh-token",
		},
	}
	h := newTestHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login/naver",
		`{"code":"one-time-code","autoLogin":true}`)
	c.SetParamNames("provider")
	c.SetParamValues("naver")

	require.NoError(t, h.OAuthLogin(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "opaque-refresh-token")
}

func TestAuthHandlerLogoutUsesTokenIdentity(t *testing.T) {
	stub := &stubUsecase{}
	h := newTestHandler(stub)
	accountID := uuid.New()

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Set(middleware.ContextKeyAccountID, accountID)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, stub.loggedOut, 1)
	assert.Equal(t, accountID, stub.loggedOut[0])
}

func TestAuthHandlerLogoutWithoutIdentity(t *testing.T) {
	h := newTestHandler(&stubUsecase{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerUpdatePasswordRejectsForeignEmail(t *testing.T) {
	h := newTestHandler(&stubUsecase{})

	c, rec := newTestContext(t, http.MethodPatch, "/auth/password",
		`{"email":"bob@example.com","newPassword":"new-password"}`)
	c.Set(middleware.ContextKeyEmail, "alice@example.com")

	require.NoError(t, h.UpdatePassword(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthHandlerUpdatePassword(t *testing.T) {
	h := newTestHandler(&stubUsecase{})

	c, rec := newTestContext(t, http.MethodPatch, "/auth/password",
		`{"email":"alice@example.com","newPassword":"new-password"}`)
	c.Set(middleware.ContextKeyEmail, "alice@example.com")

	require.NoError(t, h.UpdatePassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandlerTokenExpired(t *testing.T) {
	h := newTestHandler(&stubUsecase{expired: true})

	c, rec := newTestContext(t, http.MethodGet, "/auth/token/expired", "")
	c.Request().Header.Set("Authorization", "Bearer some-token")

	require.NoError(t, h.TokenExpired(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data map[string]bool `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Data["expired"])
}

func TestAuthHandlerTokenExpiredRequiresBearer(t *testing.T) {
	h := newTestHandler(&stubUsecase{})

	c, rec := newTestContext(t, http.MethodGet, "/auth/token/expired", "")
	c.Request().Header.Set("Authorization", "Basic abc")

	require.NoError(t, h.TokenExpired(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
