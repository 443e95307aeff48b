package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"boxtribute/internal/common"
)

// RequirePermission guards a route with one of the opaque permission
// strings carried by the token. Authorization decisions beyond this check
// belong to the remote service.
func RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if _, ok := common.GetActorFromContext(ctx); !ok {
				return common.SendUnauthorizedError(c)
			}

			permissions, ok := common.GetPermissionsFromContext(ctx)
			if !ok {
				return c.JSON(http.StatusForbidden, common.CreateErrorResponse("FORBIDDEN", "Insufficient permissions", nil))
			}
			for _, p := range permissions {
				if p == permission || p == "*" {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, common.CreateErrorResponse("FORBIDDEN", "Insufficient permissions", nil))
		}
	}
}
