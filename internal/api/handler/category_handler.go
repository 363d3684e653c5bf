package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storefrontlabs/storefront-api/internal/api/report"
	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// publicCategoryResponse is the storefront view of a category; availability
// flags stay internal.
type publicCategoryResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	ImageID *int64 `json:"image_id,omitempty"`
}

func newPublicCategory(c *domain.Category) publicCategoryResponse {
	return publicCategoryResponse{ID: c.ID, Name: c.Name, ImageID: c.ImageID}
}

// PublicList lists available categories.
//
// @Summary      List categories
// @Tags         category
// @Produce      json
// @Param        featured  query     bool  false  "Only featured categories"
// @Success      200       {array}   publicCategoryResponse
// @Router       /api/category [get]
func (h *CategoryHandler) PublicList(c echo.Context) report.Outcome {
	featured := c.QueryParam("featured") == "true"

	categories, err := h.service.PublicList(c.Request().Context(), featured)
	if err != nil {
		return fail(c, err)
	}

	response := make([]publicCategoryResponse, 0, len(categories))
	for _, cat := range categories {
		response = append(response, newPublicCategory(cat))
	}
	_ = c.JSON(http.StatusOK, response)
	return report.OK()
}

// PublicGet returns one available category.
//
// @Summary      Get category
// @Tags         category
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  publicCategoryResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/category/{id} [get]
func (h *CategoryHandler) PublicGet(c echo.Context) report.Outcome {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	category, err := h.service.PublicGet(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, newPublicCategory(category))
	return report.OK()
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	ImageID     *int64 `json:"image_id,omitempty"`
	IsFeatured  *bool  `json:"is_featured,omitempty"`
	IsAvailable *bool  `json:"is_available,omitempty"`
}

// Create adds a category.
//
// @Summary      Create category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/category [post]
func (h *CategoryHandler) Create(c echo.Context) report.Outcome {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	category, err := h.service.Create(c.Request().Context(), ports.CreateCategoryInput{
		Name:        req.Name,
		ImageID:     req.ImageID,
		IsFeatured:  req.IsFeatured,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusCreated, category)
	return report.OK()
}

// AdminGet returns a category regardless of availability. With ?full=true
// the internal flags are included.
//
// @Summary      Get category (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int   true   "Category ID"
// @Param        full  query     bool  false  "Include internal flags"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/category/{id} [get]
func (h *CategoryHandler) AdminGet(c echo.Context) report.Outcome {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	category, err := h.service.AdminGet(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}

	if c.QueryParam("full") == "true" {
		_ = c.JSON(http.StatusOK, category)
	} else {
		_ = c.JSON(http.StatusOK, newPublicCategory(category))
	}
	return report.OK()
}

type patchCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	ImageID     *int64  `json:"image_id,omitempty"`
	IsFeatured  *bool   `json:"is_featured,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
}

// Patch updates category fields.
//
// @Summary      Patch category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Category ID"
// @Param        body  body      patchCategoryRequest  true  "Fields to update"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/category/{id} [patch]
func (h *CategoryHandler) Patch(c echo.Context) report.Outcome {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req patchCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	category, err := h.service.Patch(c.Request().Context(), id, ports.CategoryPatch{
		Name:        req.Name,
		ImageID:     req.ImageID,
		IsFeatured:  req.IsFeatured,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, category)
	return report.OK()
}

// Delete removes a category.
//
// @Summary      Delete category
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/category/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) report.Outcome {
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
