package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/rewards-api/internal/api/metrics"
	"github.com/taskforge/rewards-api/internal/core/ports"
)

// ShopHandler handles HTTP requests for the shop catalog and the
// two-phase redemption flow.
type ShopHandler struct {
	service ports.ShopService
}

func NewShopHandler(service ports.ShopService) *ShopHandler {
	return &ShopHandler{service: service}
}

// List handles GET /api/shop.
//
// @Summary      List shop items
// @Tags         shop
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   object
// @Failure      401  {object}  errorResponse
// @Router       /api/shop [get]
func (h *ShopHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Create handles POST /api/shop (admin only).
//
// @Summary      Create a shop item
// @Tags         shop
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createItemRequest  true  "Item details"
// @Success      201   {object}  object
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/shop [post]
func (h *ShopHandler) Create(c echo.Context) error {
	var req createItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.service.Create(c.Request().Context(), ports.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Cost:        req.Cost,
		FormLink:    req.FormLink,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Delete handles DELETE /api/shop/:id (admin only).
//
// @Summary      Delete a shop item
// @Tags         shop
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Item id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/shop/{id} [delete]
func (h *ShopHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "item deleted"})
}

// Redeem handles POST /api/shop/redeem (members only). This is the quote
// phase: it validates affordability and returns the fulfillment link
// without debiting anything.
//
// @Summary      Quote a redemption
// @Tags         shop
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      redeemRequest  true  "Item to redeem"
// @Success      200   {object}  quoteResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/shop/redeem [post]
func (h *ShopHandler) Redeem(c echo.Context) error {
	var req redeemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	item, err := h.service.Quote(c.Request().Context(), caller, req.ItemID)
	if err != nil {
		return err
	}

	metrics.RedemptionsTotal.WithLabelValues("quote").Inc()
	return c.JSON(http.StatusOK, quoteResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		TokenCost:   item.Cost,
		FormLink:    item.FormLink,
	})
}

// Confirm handles POST /api/shop/redeem/confirm. This is the debit phase.
//
// @Summary      Confirm a redemption and debit the token cost
// @Tags         shop
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      redemptionActionRequest  true  "Item and target user"
// @Success      200   {object}  confirmResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/shop/redeem/confirm [post]
func (h *ShopHandler) Confirm(c echo.Context) error {
	var req redemptionActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	result, err := h.service.Confirm(c.Request().Context(), caller, req.ItemID, req.UserID)
	if err != nil {
		return err
	}

	metrics.RedemptionsTotal.WithLabelValues("confirm").Inc()
	return c.JSON(http.StatusOK, confirmResponse{
		Success:         true,
		RemainingTokens: result.RemainingTokens,
	})
}

// Cancel handles POST /api/shop/redeem/cancel. No debit happened at quote
// time, so cancelling only acknowledges the abandonment.
//
// @Summary      Cancel an abandoned redemption
// @Tags         shop
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      redemptionActionRequest  true  "Item and target user"
// @Success      200   {object}  cancelResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/shop/redeem/cancel [post]
func (h *ShopHandler) Cancel(c echo.Context) error {
	var req redemptionActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.Cancel(c.Request().Context(), caller, req.ItemID, req.UserID); err != nil {
		return err
	}

	metrics.RedemptionsTotal.WithLabelValues("cancel").Inc()
	return c.JSON(http.StatusOK, cancelResponse{
		Success: true,
		Message: "redemption cancelled",
	})
}
