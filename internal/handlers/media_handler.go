package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"evently_backend/internal/middleware"
	"evently_backend/internal/services"
	"evently_backend/internal/services/dto"
	"evently_backend/pkg/apperrors"
)

const maxMultipartMemory = 64 << 20

type MediaHandler struct {
	*BaseHandler
	uploadService   services.UploadService
	zoneService     services.ZoneService
	deletionService services.DeletionService
}

func NewMediaHandler(
	base *BaseHandler,
	uploadService services.UploadService,
	zoneService services.ZoneService,
	deletionService services.DeletionService,
) *MediaHandler {
	return &MediaHandler{
		BaseHandler:     base,
		uploadService:   uploadService,
		zoneService:     zoneService,
		deletionService: deletionService,
	}
}

func (h *MediaHandler) RegisterRoutes(r *gin.RouterGroup) {
	events := r.Group("/events")
	events.Use(middleware.AuthMiddleware())
	{
		events.POST("/:eventId/media", h.UploadBatch)
		events.GET("/:eventId/media", h.ListEventMedia)
	}

	zones := r.Group("/zones")
	zones.Use(middleware.AuthMiddleware())
	{
		zones.POST("/:zoneId/media", h.AddFilesToZone)
	}

	media := r.Group("/media")
	media.Use(middleware.AuthMiddleware())
	{
		media.GET("/:fileId", h.GetFile)
		media.DELETE("/:fileId", h.DeleteFile)
	}
}

// UploadBatch accepts a multipart batch of files for an event.
// Per-file failures are reported in the body, not via the status code;
// a single ungrouped file is the one case that fails the request.
func (h *MediaHandler) UploadBatch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("failed to parse form: "+err.Error()))
		return
	}

	var req dto.BatchUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("invalid form data: "+err.Error()))
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		h.HandleValidationError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("failed to read multipart form: "+err.Error()))
		return
	}

	req.UserID = userID
	req.EventID = c.Param("eventId")
	req.Files = form.File["files"]

	response, err := h.uploadService.UploadBatch(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// A single standalone file is returned as a plain file record; a
	// batch always gets the full report. Per-file failures live in the
	// report body, not in the status code.
	if response.ZoneID == nil && response.TotalRequested == 1 && response.TotalSuccessful == 1 {
		c.JSON(http.StatusCreated, response.Successful[0])
		return
	}
	c.JSON(http.StatusCreated, response)
}

// AddFilesToZone appends files to an existing zone.
func (h *MediaHandler) AddFilesToZone(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("failed to parse form: "+err.Error()))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("failed to read multipart form: "+err.Error()))
		return
	}

	req := dto.AddFilesRequest{
		UserID: userID,
		ZoneID: c.Param("zoneId"),
		Files:  form.File["files"],
	}

	response, err := h.uploadService.AddFilesToZone(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListEventMedia returns every file of an event as a flat list.
func (h *MediaHandler) ListEventMedia(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.zoneService.ListEventMedia(c.Request.Context(), h.GetDB(c), userID, c.Param("eventId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetFile returns a single file.
func (h *MediaHandler) GetFile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.zoneService.GetFile(c.Request.Context(), h.GetDB(c), userID, c.Param("fileId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteFile removes a single file, and its zone when that file was
// the last one in it.
func (h *MediaHandler) DeleteFile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	response, err := h.deletionService.DeleteFile(c.Request.Context(), h.GetDB(c), userID, c.Param("fileId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
