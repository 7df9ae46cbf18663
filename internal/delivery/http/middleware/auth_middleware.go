package middleware

import (
	"strings"

	"markeep/internal/delivery/http/response"
	"markeep/internal/domain/entity"
	"markeep/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyAccountID = "accountID"
	ContextKeyEmail     = "accountEmail"
	ContextKeyRole      = "accountRole"
)

// AuthMiddleware validates access tokens and loads their claims into the
// request context.
type AuthMiddleware struct {
	codec service.TokenCodec
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(codec service.TokenCodec) *AuthMiddleware {
	return &AuthMiddleware{codec: codec}
}

// BearerToken extracts the token from an Authorization header value. The
// second return is false when the header is absent or not a Bearer scheme.
func BearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == header || token == "" {
		return "", false
	}

	return token, true
}

// Authenticate validates the access token and rejects the request when it is
// missing, malformed, expired or carries a bad signature.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := BearerToken(c.Request().Header.Get("Authorization"))
		if !ok {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header must carry a Bearer token")
		}

		claims, err := m.codec.DecodeAccess(token)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		c.Set(ContextKeyAccountID, claims.AccountID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, claims.Role)

		return next(c)
	}
}

// RequireRole gates a route group on the role claim. It must run after
// Authenticate.
func (m *AuthMiddleware) RequireRole(required entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKeyRole).(entity.Role)
			if !ok {
				return response.Forbidden(c, "ROLE_MISSING", "Permission denied: role information missing")
			}

			if role != required {
				return response.Forbidden(c, "ROLE_DENIED", "Permission denied: requires "+required.String()+" role")
			}

			return next(c)
		}
	}
}
