package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/rewards-api/internal/core/ports"
)

// TokenHandler mints and redeems out-of-band shared login tokens.
type TokenHandler struct {
	service ports.SharedTokenService
}

func NewTokenHandler(service ports.SharedTokenService) *TokenHandler {
	return &TokenHandler{service: service}
}

// Generate handles POST /api/token/generate (admin only).
//
// @Summary      Mint a shared login token for a user
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateTokenRequest  true  "Target uid and validity"
// @Success      201   {object}  sharedTokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/token/generate [post]
func (h *TokenHandler) Generate(c echo.Context) error {
	var req generateTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	grant, err := h.service.Generate(c.Request().Context(), req.UID, req.DaysValid)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, sharedTokenResponse{
		Token:     grant.Token,
		ExpiresAt: grant.ExpiresAt,
	})
}

// Login handles POST /api/token/login. The route is public: the shared
// token itself is the credential being exchanged.
//
// @Summary      Exchange a shared token for a bearer credential
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        body  body      sharedLoginRequest  true  "Shared token"
// @Success      200   {object}  object
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/token/login [post]
func (h *TokenHandler) Login(c echo.Context) error {
	var req sharedLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Login(c.Request().Context(), req.Token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
	})
}
