package middleware

import (
	"net/http"
	"strings"

	"agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/infrastructure/token"

	"github.com/labstack/echo/v4"
)

const claimsKey = "auth.claims"

// Authenticate requires "Authorization: Bearer <access token>" and stores
// the parsed claims on the context.
func Authenticate(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, tok, ok := strings.Cut(raw, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tok) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			claims, err := issuer.Parse(strings.TrimSpace(tok), token.Access)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireRoles must run after Authenticate.
func RequireRoles(roles ...user.Role) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[string(r)] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := Claims(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			}
			if _, ok := allowed[claims.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}

// Claims returns what Authenticate stored, if anything.
func Claims(c echo.Context) (*token.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*token.Claims)
	return claims, ok && claims != nil
}
