// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"markeep/internal/delivery/http/middleware"
	"markeep/internal/delivery/http/response"
	"markeep/internal/domain/entity"
	domainerrors "markeep/internal/domain/errors"
	"markeep/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Join handles the registration request.
func (h *AuthHandler) Join(c echo.Context) error {
	var input usecase.JoinInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Join(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, nil, "Registration successful")
}

// CheckDuplicate reports whether an email is already registered.
func (h *AuthHandler) CheckDuplicate(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Query parameter 'email' is required")
	}

	duplicate, err := h.uc.IsDuplicate(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"duplicate": duplicate}, "Duplicate check complete")
}

// Login handles the local password login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// OAuthLogin handles the provider callback. The provider name comes from the
// path so one handler serves google, naver and kakao.
func (h *AuthHandler) OAuthLogin(c echo.Context) error {
	provider := entity.Provider(c.Param("provider"))
	if !provider.IsValid() {
		return errors.WithStack(domainerrors.ErrProviderUnknown.WithDetails("provider: " + c.Param("provider")))
	}

	var input usecase.OAuthLoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid OAuth callback input")
	}
	input.Provider = provider

	output, err := h.uc.OAuthLogin(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "OAuth login successful")
}

// Renew exchanges a refresh token for a fresh access token.
func (h *AuthHandler) Renew(c echo.Context) error {
	var input usecase.RenewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid renewal input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Renew(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Token renewed")
}

// Logout revokes the caller's renewable session. The account comes from the
// validated access token, never from the request body.
func (h *AuthHandler) Logout(c echo.Context) error {
	accountID, ok := c.Get(middleware.ContextKeyAccountID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	if err := h.uc.Logout(c.Request().Context(), accountID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// UpdatePassword replaces the caller's password.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var input usecase.PasswordUpdateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password update input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	// The caller may only change the credential the token was issued for.
	if email, ok := c.Get(middleware.ContextKeyEmail).(string); !ok || email != input.Email {
		return response.Forbidden(c, "EMAIL_MISMATCH", "Password can only be changed for the authenticated account")
	}

	if err := h.uc.UpdatePassword(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password updated")
}

// TokenExpired reports whether the presented access token is expired or
// otherwise unusable. It never rejects the request; the answer is the payload.
func (h *AuthHandler) TokenExpired(c echo.Context) error {
	token, ok := middleware.BearerToken(c.Request().Header.Get("Authorization"))
	if !ok {
		return response.BadRequest(c, "MISSING_TOKEN", "Authorization header must carry a Bearer token")
	}

	return response.Success(c, http.StatusOK, map[string]bool{"expired": h.uc.IsTokenExpired(token)}, "Token inspected")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
