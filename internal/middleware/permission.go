package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-auth/internal/model"
)

// RequirePermission returns middleware that enforces that the caller's
// token grants every one of the given permissions. It assumes Authorize has
// already stored the claims in context; a request without claims is
// rejected as unauthorized.
func RequirePermission(perms ...model.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := Claims(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no token"})
			}
			for _, p := range perms {
				if !claims.HasPermission(p) {
					return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized"})
				}
			}
			return next(c)
		}
	}
}
