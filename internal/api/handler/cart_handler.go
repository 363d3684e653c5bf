package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storefrontlabs/storefront-api/internal/api/report"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

// CartHandler serves the authenticated user's cart. Every operation reads the
// user id from the validated claims; clients cannot address another user's
// entries.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// List returns the caller's cart entries.
//
// @Summary      List cart entries
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.CartEntry
// @Router       /api/cart [get]
func (h *CartHandler) List(c echo.Context) report.Outcome {
	userID, _, out := ctxClaims(c)
	if out.Failed() {
		return out
	}

	entries, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, entries)
	return report.OK()
}

type addToCartRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// Add puts a product into the cart, merging with an existing entry for the
// same product.
//
// @Summary      Add product to cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addToCartRequest  true  "Product and quantity"
// @Success      201   {object}  domain.CartEntry
// @Failure      404   {object}  errorResponse
// @Router       /api/cart [post]
func (h *CartHandler) Add(c echo.Context) report.Outcome {
	userID, _, out := ctxClaims(c)
	if out.Failed() {
		return out
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	entry, err := h.service.Add(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusCreated, entry)
	return report.OK()
}

type patchCartRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// Patch sets the quantity of one cart entry.
//
// @Summary      Update cart entry quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Cart entry ID"
// @Param        body  body      patchCartRequest  true  "New quantity"
// @Success      200   {object}  domain.CartEntry
// @Failure      404   {object}  errorResponse
// @Router       /api/cart/{id} [patch]
func (h *CartHandler) Patch(c echo.Context) report.Outcome {
	userID, _, out := ctxClaims(c)
	if out.Failed() {
		return out
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req patchCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	entry, err := h.service.UpdateQuantity(c.Request().Context(), userID, id, req.Quantity)
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, entry)
	return report.OK()
}

// Remove deletes one cart entry.
//
// @Summary      Remove cart entry
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Cart entry ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/cart/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) report.Outcome {
	userID, _, out := ctxClaims(c)
	if out.Failed() {
		return out
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.service.Remove(c.Request().Context(), userID, id); err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, messageResponse{Message: "resource deleted successfully"})
	return report.OK()
}
