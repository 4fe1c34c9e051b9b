package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/umaai/pkg/api/types"
	"github.com/urmzd/umaai/pkg/gallery"
	"github.com/urmzd/umaai/pkg/multipart"
)

// VibeHandler manages the photo-frame images.
type VibeHandler struct {
	gallery *gallery.Gallery
	maxBody int64
}

// NewVibeHandler creates a new vibe handler. maxBody <= 0 selects
// DefaultMaxBody.
func NewVibeHandler(g *gallery.Gallery, maxBody int64) *VibeHandler {
	if maxBody <= 0 {
		maxBody = DefaultMaxBody
	}
	return &VibeHandler{gallery: g, maxBody: maxBody}
}

// List handles GET /api/vibe/list
// @Summary      List images
// @Tags         vibe
// @Produce      json
// @Success      200  {object}  types.ImagesResponse
// @Router       /api/vibe/list [get]
func (h *VibeHandler) List(c *gin.Context) {
	images := h.gallery.List()
	c.JSON(http.StatusOK, types.ImagesResponse{Images: images, Count: len(images)})
}

// Upload handles POST /api/vibe/upload
// @Summary      Upload an image
// @Description  Stores the multipart field "image" in slot "index", replacing any previous file
// @Tags         vibe
// @Accept       multipart/form-data
// @Produce      json
// @Param        index  formData  int   true  "Slot 1-10"
// @Param        image  formData  file  true  "Image file"
// @Success      200  {object}  types.UploadResponse
// @Failure      400  {object}  types.ErrorResponse  "Missing field or invalid index"
// @Failure      413  {object}  types.ErrorResponse  "Body too large"
// @Failure      500  {object}  types.ErrorResponse  "Storage error"
// @Router       /api/vibe/upload [post]
func (h *VibeHandler) Upload(c *gin.Context) {
	boundary, err := multipart.Boundary(c.GetHeader("Content-Type"))
	if err != nil {
		abort(c, http.StatusBadRequest, "no_boundary", "No boundary found")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody))
	if err != nil {
		bodyError(c, err)
		return
	}

	form := multipart.Decode(body, boundary)
	image, hasImage := form.File("image")
	rawIndex, hasIndex := form.Value("index")
	if !hasImage || !hasIndex {
		abort(c, http.StatusBadRequest, "missing_field", "Missing image or index")
		return
	}

	index, err := strconv.Atoi(rawIndex)
	if err != nil || !gallery.ValidIndex(index) {
		abort(c, http.StatusBadRequest, "invalid_index", gallery.ErrInvalidIndex.Error())
		return
	}

	img, err := h.gallery.Upload(index, image.Data, image.Filename, image.ContentType)
	if err != nil {
		abort(c, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}

	log.Info().Int("index", img.Index).Str("file", img.Filename).Int("bytes", len(image.Data)).Msg("Image stored")

	c.JSON(http.StatusOK, types.UploadResponse{
		Success:  true,
		Index:    img.Index,
		Filename: img.Filename,
		URL:      img.URL,
	})
}

// Delete handles GET /api/vibe/delete
// @Summary      Delete an image
// @Tags         vibe
// @Produce      json
// @Param        index  query     int  true  "Slot 1-10"
// @Success      200  {object}  types.DeleteResponse
// @Failure      400  {object}  types.ErrorResponse  "Invalid index"
// @Failure      500  {object}  types.ErrorResponse  "Storage error"
// @Router       /api/vibe/delete [get]
func (h *VibeHandler) Delete(c *gin.Context) {
	index, _ := strconv.Atoi(c.Query("index"))

	deleted, err := h.gallery.Delete(index)
	if err != nil {
		if errors.Is(err, gallery.ErrInvalidIndex) {
			abort(c, http.StatusBadRequest, "invalid_index", err.Error())
			return
		}
		abort(c, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}

	message := fmt.Sprintf("Image %d not found", index)
	if deleted {
		message = fmt.Sprintf("Image %d deleted", index)
	}
	c.JSON(http.StatusOK, types.DeleteResponse{
		Success: true,
		Deleted: deleted,
		Message: message,
	})
}

// Photo handles GET /photos/:name
// @Summary      Serve an image
// @Tags         vibe
// @Produce      image/jpeg,image/png,image/gif,image/webp
// @Param        name  path  string  true  "File name, e.g. 3.jpg"
// @Success      200
// @Failure      404  {object}  types.ErrorResponse  "Image not found"
// @Router       /photos/{name} [get]
func (h *VibeHandler) Photo(c *gin.Context) {
	path, contentType, err := h.gallery.Open(c.Param("name"))
	if err != nil {
		abort(c, http.StatusNotFound, "not_found", err.Error())
		return
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=3600")
	c.File(path)
}
