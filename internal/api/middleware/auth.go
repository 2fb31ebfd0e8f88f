package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/traveluniverse/booking-system/internal/core/ports"
)

// Context keys set by Auth.
const (
	CtxUsername = "username"
	CtxRole     = "role"
	CtxTokenID  = "jti"
)

// BearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is absent or malformed.
func BearerToken(c echo.Context) string {
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth validates the JWT, rejects revoked tokens and injects the claims into
// the context. denylist may be nil.
func Auth(jwtSecret string, denylist ports.TokenDenylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			raw := BearerToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			username, _ := claims["sub"].(string)
			if username == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			jti, _ := claims["jti"].(string)

			if denylist != nil && jti != "" {
				revoked, err := denylist.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					return fmt.Errorf("check token revocation: %w", err)
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked")
				}
			}

			c.Set(CtxUsername, username)
			c.Set(CtxRole, claims["role"])
			c.Set(CtxTokenID, jti)

			return next(c)
		}
	}
}
