package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/rewards-api/internal/core/domain"
)

// ctxCaller extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a missing uid means the middleware
// never ran for this route.
func ctxCaller(c echo.Context) (domain.Caller, error) {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return domain.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	admin, _ := c.Get("admin").(bool)
	return domain.Caller{UID: uid, Admin: admin}, nil
}
