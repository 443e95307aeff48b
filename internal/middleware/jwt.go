package middleware

import (
	"context"
	"strings"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"boxtribute/internal/common"
)

// TokenClaims are the claims the identity provider puts into access tokens.
// Permission strings and base ids are consumed as opaque values; this
// service never interprets role semantics.
type TokenClaims struct {
	Permissions []string `json:"permissions"`
	BaseIDs     []string `json:"base_ids"`
	Email       string   `json:"email"`
	jwt.RegisteredClaims
}

// JWTMiddleware validates bearer tokens against the identity provider's
// JWKS and stores actor, permissions and base ids in the request context.
func JWTMiddleware(jwks *keyfunc.JWKS) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return common.SendUnauthorizedError(c)
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return common.SendUnauthorizedError(c)
			}

			claims := &TokenClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, jwks.Keyfunc)
			if err != nil || !token.Valid {
				return common.SendUnauthorizedError(c)
			}

			actor := claims.Email
			if actor == "" {
				actor = claims.Subject
			}
			if actor == "" {
				return common.SendUnauthorizedError(c)
			}

			ctx := context.WithValue(c.Request().Context(), common.ActorKey, actor)
			ctx = context.WithValue(ctx, common.PermissionsKey, claims.Permissions)
			ctx = context.WithValue(ctx, common.BaseIDsKey, claims.BaseIDs)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
