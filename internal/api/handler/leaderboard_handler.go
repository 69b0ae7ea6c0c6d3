package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/rewards-api/internal/core/ports"
)

// LeaderboardHandler serves the ranked leaderboard projection.
type LeaderboardHandler struct {
	service ports.LedgerService
}

func NewLeaderboardHandler(service ports.LedgerService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// List handles GET /api/leaderboard.
//
// @Summary      List non-admin users ranked by points
// @Tags         leaderboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   leaderboardEntryResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/leaderboard [get]
func (h *LeaderboardHandler) List(c echo.Context) error {
	entries, err := h.service.Leaderboard(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]leaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, leaderboardEntryResponse{
			UID:         e.UID,
			DisplayName: e.DisplayName,
			Points:      e.Points,
			Tokens:      e.Tokens,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
