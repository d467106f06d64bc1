package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront-catalog/internal/core/domain/invalidation"
)

// InvalidateTokenHeader carries the shared secret for automated callers.
const InvalidateTokenHeader = "x-invalidate-token"

// AuthMiddleware authorizes cache-mutating requests. Two methods are
// accepted, OR'd with equal privilege: the shared-secret token header for
// automated callers, or a Bearer session token signed by the auth provider
// for the admin UI. Neither succeeding means 401 and no cache state changes.
type AuthMiddleware struct {
	invalidateToken string
	jwtSecret       string
	logger          *logrus.Logger
}

func NewAuthMiddleware(invalidateToken, jwtSecret string, logger *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{invalidateToken: invalidateToken, jwtSecret: jwtSecret, logger: logger}
}

// RequireInvalidateAuth creates middleware enforcing the OR-authorization.
func (m *AuthMiddleware) RequireInvalidateAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.tokenAuthorized(c.Request().Header.Get(InvalidateTokenHeader)) {
				c.Set("auth_method", "token")
				return next(c)
			}
			if err := m.sessionAuthorized(c.Request().Header.Get(echo.HeaderAuthorization)); err == nil {
				c.Set("auth_method", "session")
				return next(c)
			}
			if m.logger != nil {
				m.logger.WithFields(logrus.Fields{
					"ip":    c.RealIP(),
					"path":  c.Request().URL.Path,
					"state": invalidation.StateRejected,
				}).Warn("invalidation request rejected")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
	}
}

func (m *AuthMiddleware) tokenAuthorized(token string) bool {
	if token == "" || m.invalidateToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(m.invalidateToken)) == 1
}

func (m *AuthMiddleware) sessionAuthorized(authHeader string) error {
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return fmt.Errorf("missing bearer token")
	}
	tokenString := strings.TrimPrefix(authHeader, prefix)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.jwtSecret), nil
	})
	if err != nil {
		return fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid session token")
	}
	return nil
}
