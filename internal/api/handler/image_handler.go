package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storefrontlabs/storefront-api/internal/api/report"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

type ImageHandler struct {
	service ports.ImageService
}

func NewImageHandler(service ports.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// Serve streams an uploaded image by id. Public route.
//
// @Summary      Serve image
// @Tags         image
// @Produce      octet-stream
// @Param        id   path  int  true  "Image ID"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /api/image/{id} [get]
func (h *ImageHandler) Serve(c echo.Context) report.Outcome {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	_, path, err := h.service.Open(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}

	// c.File sets the content type from the file extension and streams it.
	if err := c.File(path); err != nil {
		_ = c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
		return report.General("image row exists but file missing on disk")
	}
	return report.OK()
}

// Upload accepts a multipart file field named "image" and records it.
//
// @Summary      Upload image
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "Image file"
// @Success      201    {object}  domain.Image
// @Failure      409    {object}  errorResponse
// @Router       /api/admin/image [post]
func (h *ImageHandler) Upload(c echo.Context) report.Outcome {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "image file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "invalid upload")
	}
	defer src.Close()

	image, err := h.service.Upload(c.Request().Context(), fileHeader.Filename, src)
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusCreated, image)
	return report.OK()
}

// List returns all uploaded images.
//
// @Summary      List images
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Image
// @Router       /api/admin/image [get]
func (h *ImageHandler) List(c echo.Context) report.Outcome {
	images, err := h.service.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, images)
	return report.OK()
}

type patchImageRequest struct {
	FileName string `json:"file_name" validate:"required"`
}

// Patch renames an image record; the on-disk file keeps its random name.
//
// @Summary      Rename image
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Image ID"
// @Param        body  body      patchImageRequest true  "New file name"
// @Success      200   {object}  domain.Image
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/image/{id} [patch]
func (h *ImageHandler) Patch(c echo.Context) report.Outcome {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	var req patchImageRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	image, err := h.service.Rename(c.Request().Context(), id, req.FileName)
	if err != nil {
		return fail(c, err)
	}
	_ = c.JSON(http.StatusOK, image)
	return report.OK()
}

// Delete removes the image row and its file.
//
// @Summary      Delete image
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Image ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/image/{id} [delete]
func (h *ImageHandler) Delete(c echo.Context) report.Outcome {
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
