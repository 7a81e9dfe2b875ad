package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/geolibrary/service-location/internal/application"
	"github.com/geolibrary/service-location/internal/domain/geo"
)

// LocationHandler handles HTTP requests for catalog operations.
type LocationHandler struct {
	service *application.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(service *application.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// RegisterRoutes registers all location routes.
func (h *LocationHandler) RegisterRoutes(r *gin.RouterGroup) {
	locations := r.Group("/api/v1/locations")
	{
		locations.POST("", h.CreateLocation)
		locations.GET("", h.ListLocations)
		locations.GET("/:id", h.GetLocation)
		locations.PATCH("/:id", h.UpdateLocation)
		locations.DELETE("/:id", h.DeleteLocation)
	}

	// Area search lives outside the /locations group so the static path
	// does not clash with the :id wildcard.
	r.POST("/api/v1/search/area", h.SearchArea)
}

// CreateLocation handles POST /api/v1/locations.
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req application.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateLocation(c.Request.Context(), req)
	if err != nil {
		Error(c, err)
		return
	}

	Created(c, result)
}

// ListLocations handles GET /api/v1/locations. With a ?name= query it
// performs an exact-name lookup instead.
func (h *LocationHandler) ListLocations(c *gin.Context) {
	if name, ok := c.GetQuery("name"); ok {
		result, err := h.service.GetLocationByName(c.Request.Context(), name)
		if err != nil {
			Error(c, err)
			return
		}
		if result == nil {
			NotFound(c, "location not found")
			return
		}
		Success(c, result)
		return
	}

	result, err := h.service.ListLocations(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, result)
}

// GetLocation handles GET /api/v1/locations/:id.
func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.service.GetLocation(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	if result == nil {
		NotFound(c, "location not found")
		return
	}
	Success(c, result)
}

// UpdateLocation handles PATCH /api/v1/locations/:id with a sparse body.
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req application.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateLocation(c.Request.Context(), id, req)
	if err != nil {
		Error(c, err)
		return
	}
	if result == nil {
		NotFound(c, "location not found")
		return
	}
	Success(c, result)
}

// DeleteLocation handles DELETE /api/v1/locations/:id.
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteLocation(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	if !deleted {
		NotFound(c, "location not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchAreaRequest is the polygon payload for area search. The handler
// rejects polygons with fewer than 3 vertices as a usage error; the
// evaluator itself would simply match nothing.
type SearchAreaRequest struct {
	Polygon []geo.Point `json:"polygon" binding:"required"`
}

// SearchArea handles POST /api/v1/search/area.
func (h *LocationHandler) SearchArea(c *gin.Context) {
	var req SearchAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if len(req.Polygon) < 3 {
		BadRequest(c, "polygon must have at least 3 points")
		return
	}

	result, err := h.service.SearchArea(c.Request.Context(), geo.Polygon(req.Polygon))
	if err != nil {
		Error(c, err)
		return
	}
	Success(c, result)
}

// parseID extracts the numeric :id path parameter, writing a 400 on
// malformed input.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		BadRequest(c, "invalid location ID")
		return 0, false
	}
	return id, true
}
