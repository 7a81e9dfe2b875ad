package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/geolibrary/service-location/internal/application"
)

// PhotoHandler handles HTTP requests for location photos.
type PhotoHandler struct {
	service *application.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(service *application.PhotoService) *PhotoHandler {
	return &PhotoHandler{service: service}
}

// RegisterRoutes registers all photo routes.
func (h *PhotoHandler) RegisterRoutes(r *gin.RouterGroup) {
	locations := r.Group("/api/v1/locations")
	{
		locations.POST("/:id/photos", h.AttachPhoto)
		locations.GET("/:id/photos", h.ListPhotos)
	}
}

// AttachPhoto handles POST /api/v1/locations/:id/photos.
func (h *PhotoHandler) AttachPhoto(c *gin.Context) {
	locationID, ok := parseID(c)
	if !ok {
		return
	}

	var req application.AttachPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AttachPhoto(c.Request.Context(), locationID, req)
	if err != nil {
		Error(c, err)
		return
	}
	if result == nil {
		NotFound(c, "location not found")
		return
	}
	Created(c, result)
}

// ListPhotos handles GET /api/v1/locations/:id/photos.
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	locationID, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.service.ListPhotos(c.Request.Context(), locationID)
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, result)
}
