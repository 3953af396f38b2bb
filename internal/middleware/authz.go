package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-auth/internal/auth"
)

// claimsKey is the context key under which Authorize stores decoded claims.
const claimsKey = "claims"

// Authorize returns middleware that verifies the Authorization header
// ("token <jwt>") through the auth service and stores the decoded claims in
// the request context for handlers and later middleware. A missing or
// malformed header and an expired token yield 401; a tampered or otherwise
// invalid token yields 403.
func Authorize(svc *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := svc.Authorize(c.Request().Header.Get("Authorization"))
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrNoToken), errors.Is(err, auth.ErrTokenExpired):
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
				default:
					return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
				}
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// Claims returns the decoded claims stored by Authorize, if any.
func Claims(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	return claims, ok
}
