package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

// IdentityEnsurer is the slice of the ledger the middleware needs: the
// idempotent get-or-create performed on every authenticated request.
type IdentityEnsurer interface {
	Ensure(ctx context.Context, id domain.Identity) (*domain.User, error)
}

// Auth validates the bearer JWT, upserts the user ledger row, and injects
// the resolved identity into the request context.
func Auth(jwtSecret string, users IdentityEnsurer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			uid, _ := claims["uid"].(string)
			if uid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing uid claim")
			}
			admin, _ := claims["admin"].(bool)
			email, _ := claims["email"].(string)
			name, _ := claims["name"].(string)

			if _, err := users.Ensure(c.Request().Context(), domain.Identity{
				UID:   uid,
				Email: email,
				Name:  name,
				Admin: admin,
			}); err != nil {
				return fmt.Errorf("auth: %w", err)
			}

			role := domain.RoleMember
			if admin {
				role = domain.RoleAdmin
			}
			c.Set("uid", uid)
			c.Set("admin", admin)
			c.Set("role", role)

			return next(c)
		}
	}
}
