package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

// NurseIDKey is the request-context key holding the authenticated nurse's ID.
const NurseIDKey contextKey = "nurse_id"

// BearerMiddleware validates the Authorization header on every request and
// stores the authenticated nurse ID on the request context. Any failure is a
// 401; callers treat that as fatal to the session.
func BearerMiddleware(issuer *TokenIssuer, skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			nurseID, err := issuer.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			ctx := context.WithValue(c.Request().Context(), NurseIDKey, nurseID)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// NurseIDFromContext returns the authenticated nurse ID, or uuid.Nil when
// the request was not authenticated.
func NurseIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(NurseIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// PublicPathSkipper exempts the unauthenticated endpoints (register, login,
// health) from bearer validation.
func PublicPathSkipper(c echo.Context) bool {
	path := c.Request().URL.Path
	switch path {
	case "/api/health", "/api/auth/register", "/api/auth/login":
		return true
	}
	return false
}
