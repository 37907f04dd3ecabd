package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"evently_backend/internal/middleware"
	"evently_backend/internal/services"
	"evently_backend/internal/services/dto"
)

type ZoneHandler struct {
	*BaseHandler
	zoneService     services.ZoneService
	deletionService services.DeletionService
}

func NewZoneHandler(
	base *BaseHandler,
	zoneService services.ZoneService,
	deletionService services.DeletionService,
) *ZoneHandler {
	return &ZoneHandler{
		BaseHandler:     base,
		zoneService:     zoneService,
		deletionService: deletionService,
	}
}

func (h *ZoneHandler) RegisterRoutes(r *gin.RouterGroup) {
	zones := r.Group("/zones")
	zones.Use(middleware.AuthMiddleware())
	{
		zones.GET("/:zoneId", h.GetZone)
		zones.PATCH("/:zoneId", h.UpdateZone)
		zones.DELETE("/:zoneId", h.DeleteZone)
	}

	events := r.Group("/events")
	events.Use(middleware.AuthMiddleware())
	{
		events.GET("/:eventId/zones", h.ListZones)
	}
}

// GetZone returns one zone with its files.
func (h *ZoneHandler) GetZone(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.zoneService.GetZone(c.Request.Context(), h.GetDB(c), userID, c.Param("zoneId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateZone applies a partial metadata update. Fields absent from the
// body keep their current value.
func (h *ZoneHandler) UpdateZone(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateZoneRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.zoneService.UpdateZone(c.Request.Context(), h.GetDB(c), userID, c.Param("zoneId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteZone removes a zone together with every file in it.
func (h *ZoneHandler) DeleteZone(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.deletionService.DeleteZone(c.Request.Context(), h.GetDB(c), userID, c.Param("zoneId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListZones returns the zones of an event. The content_type query
// parameter narrows the listing to zones containing files of that
// type family.
func (h *ZoneHandler) ListZones(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	contentType := c.Query("content_type")

	response, err := h.zoneService.ListZones(c.Request.Context(), h.GetDB(c), userID, c.Param("eventId"), contentType)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
