package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storefrontlabs/storefront-api/internal/api/report"
	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

type publicProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	CategoryID  int64   `json:"category_id"`
	ImageID     *int64  `json:"image_id,omitempty"`
}

func newPublicProduct(p *domain.Product) publicProductResponse {
	return publicProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		ImageID:     p.ImageID,
	}
}

// PublicList lists available products, optionally filtered by featured flag
// and price bounds.
//
// @Summary      List products
// @Tags         product
// @Produce      json
// @Param        featured  query     bool    false  "Only featured products"
// @Param        min       query     number  false  "Minimum price"
// @Param        max       query     number  false  "Maximum price"
// @Success      200       {array}   publicProductResponse
// @Router       /api/product [get]
func (h *ProductHandler) PublicList(c echo.Context) report.Outcome {
	filter := domain.ProductFilter{FeaturedOnly: c.QueryParam("featured") == "true"}

	if raw := c.QueryParam("min"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(c, "invalid min price")
		}
		filter.Min = &min
	}
	if raw := c.QueryParam("max"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(c, "invalid max price")
		}
		filter.Max = &max
	}

	products, err := h.service.PublicList(c.Request().Context(), filter)
	if err != nil {
		return fail(c, err)
	}

	response := make([]publicProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, newPublicProduct(p))
	}
	_ = c.JSON(http.StatusOK, response)
	return report.OK()
}

// PublicGet returns one available product.
//
// @Summary      Get product
// @Tags         product
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  publicProductResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/product/{id} [get]
func (h *ProductHandler) PublicGet(c echo.Context) report.Outcome {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	product, err := h.service.PublicGet(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, newPublicProduct(product))
	return report.OK()
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	CategoryID  int64   `json:"category_id" validate:"required"`
	ImageID     *int64  `json:"image_id,omitempty"`
	IsFeatured  *bool   `json:"is_featured,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
}

// Create adds a product.
//
// @Summary      Create product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/product [post]
func (h *ProductHandler) Create(c echo.Context) report.Outcome {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		ImageID:     req.ImageID,
		IsFeatured:  req.IsFeatured,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusCreated, product)
	return report.OK()
}

// AdminGet returns a product regardless of availability.
//
// @Summary      Get product (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int   true   "Product ID"
// @Param        full  query     bool  false  "Include internal flags"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/product/{id} [get]
func (h *ProductHandler) AdminGet(c echo.Context) report.Outcome {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	product, err := h.service.AdminGet(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}

	if c.QueryParam("full") == "true" {
		_ = c.JSON(http.StatusOK, product)
	} else {
		_ = c.JSON(http.StatusOK, newPublicProduct(product))
	}
	return report.OK()
}

type patchProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	CategoryID  *int64   `json:"category_id,omitempty"`
	ImageID     *int64   `json:"image_id,omitempty"`
	IsFeatured  *bool    `json:"is_featured,omitempty"`
	IsAvailable *bool    `json:"is_available,omitempty"`
}

// Patch updates product fields.
//
// @Summary      Patch product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Product ID"
// @Param        body  body      patchProductRequest  true  "Fields to update"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/product/{id} [patch]
func (h *ProductHandler) Patch(c echo.Context) report.Outcome {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req patchProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	product, err := h.service.Patch(c.Request().Context(), id, ports.ProductPatch{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		ImageID:     req.ImageID,
		IsFeatured:  req.IsFeatured,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, product)
	return report.OK()
}

// Delete removes a product.
//
// @Summary      Delete product
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/product/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) report.Outcome {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, messageResponse{Message: "resource deleted successfully"})
	return report.OK()
}
