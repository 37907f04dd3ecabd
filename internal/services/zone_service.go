package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"evently_backend/internal/models"
	"evently_backend/internal/repositories"
	"evently_backend/internal/services/dto"
	"evently_backend/internal/storage"
	"evently_backend/pkg/apperrors"
)

type ZoneService interface {
	// GetZone returns one zone with its files.
	GetZone(ctx context.Context, db *gorm.DB, userID, zoneID string) (*dto.ZoneDetailResponse, error)

	// UpdateZone applies a partial metadata update. Nil fields in the
	// request keep their current value.
	UpdateZone(ctx context.Context, db *gorm.DB, userID, zoneID string, req *dto.UpdateZoneRequest) (*dto.ZoneDetailResponse, error)

	// ListZones returns the zones of an event, optionally narrowed to
	// files of one content type family (e.g. "image", "video").
	ListZones(ctx context.Context, db *gorm.DB, userID, eventID, contentType string) (*dto.ZoneListResponse, error)

	// ListEventMedia returns every file of an event, grouped or not.
	ListEventMedia(ctx context.Context, db *gorm.DB, userID, eventID string) (*dto.MediaListResponse, error)

	// GetFile returns one file.
	GetFile(ctx context.Context, db *gorm.DB, userID, fileID string) (*dto.MediaFileResponse, error)
}

type zoneService struct {
	eventRepo repositories.EventRepository
	mediaRepo repositories.MediaRepository
	storage   storage.Storage
}

func NewZoneService(
	eventRepo repositories.EventRepository,
	mediaRepo repositories.MediaRepository,
	store storage.Storage,
) ZoneService {
	return &zoneService{
		eventRepo: eventRepo,
		mediaRepo: mediaRepo,
		storage:   store,
	}
}

func (s *zoneService) GetZone(ctx context.Context, db *gorm.DB, userID, zoneID string) (*dto.ZoneDetailResponse, error) {
	zone, err := s.mediaRepo.FindZoneWithFiles(db, zoneID)
	if err != nil {
		return nil, handleZoneError(err)
	}

	if _, err := s.eventRepo.FindByIDAndOwner(db, zone.EventID, userID); err != nil {
		return nil, handleEventError(err)
	}

	return s.buildZoneDetail(ctx, zone, zone.Files), nil
}

func (s *zoneService) UpdateZone(ctx context.Context, db *gorm.DB, userID, zoneID string, req *dto.UpdateZoneRequest) (*dto.ZoneDetailResponse, error) {
	zone, err := s.mediaRepo.FindZoneByID(db, zoneID)
	if err != nil {
		return nil, handleZoneError(err)
	}

	if _, err := s.eventRepo.FindByIDAndOwner(db, zone.EventID, userID); err != nil {
		return nil, handleEventError(err)
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
		zone.Title = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
		zone.Description = *req.Description
	}
	if req.Tags != nil {
		zone.SetTagList(*req.Tags)
		fields["tags"] = zone.Tags
	}

	if len(fields) == 0 {
		return nil, apperrors.NewBadRequestError("no fields to update")
	}

	// The response is built from the local struct, so the timestamp the
	// repository writes has to be the one we report.
	now := time.Now()
	fields["updated_at"] = now
	zone.UpdatedAt = now

	if err := s.mediaRepo.UpdateZoneFields(db, zone.ID, fields); err != nil {
		return nil, handleZoneError(err)
	}

	files, err := s.mediaRepo.FindFilesByZone(db, zone.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildZoneDetail(ctx, zone, files), nil
}

func (s *zoneService) ListZones(ctx context.Context, db *gorm.DB, userID, eventID, contentType string) (*dto.ZoneListResponse, error) {
	if _, err := s.eventRepo.FindByIDAndOwner(db, eventID, userID); err != nil {
		return nil, handleEventError(err)
	}

	zones, err := s.mediaRepo.FindZonesByEvent(db, eventID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ZoneListResponse{Zones: []dto.ZoneDetailResponse{}}
	for i := range zones {
		files := filterByContentType(zones[i].Files, contentType)
		if contentType != "" && len(files) == 0 {
			continue
		}
		resp.Zones = append(resp.Zones, *s.buildZoneDetail(ctx, &zones[i], files))
		resp.TotalFiles += len(files)
	}
	resp.TotalZones = len(resp.Zones)

	return resp, nil
}

func (s *zoneService) ListEventMedia(ctx context.Context, db *gorm.DB, userID, eventID string) (*dto.MediaListResponse, error) {
	if _, err := s.eventRepo.FindByIDAndOwner(db, eventID, userID); err != nil {
		return nil, handleEventError(err)
	}

	files, err := s.mediaRepo.FindFilesByEvent(db, eventID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.MediaListResponse{Files: []dto.MediaFileResponse{}, Total: len(files)}
	for i := range files {
		resp.Files = append(resp.Files, *s.buildFileResponse(ctx, &files[i]))
	}

	return resp, nil
}

func (s *zoneService) GetFile(ctx context.Context, db *gorm.DB, userID, fileID string) (*dto.MediaFileResponse, error) {
	file, err := s.mediaRepo.FindFileByID(db, fileID)
	if err != nil {
		return nil, handleFileError(err)
	}

	if _, err := s.eventRepo.FindByIDAndOwner(db, file.EventID, userID); err != nil {
		return nil, handleEventError(err)
	}

	return s.buildFileResponse(ctx, file), nil
}

func (s *zoneService) buildZoneDetail(ctx context.Context, zone *models.Zone, files []models.MediaFile) *dto.ZoneDetailResponse {
	detail := &dto.ZoneDetailResponse{
		ZoneResponse: *buildZoneResponse(zone, len(files)),
		Files:        []dto.MediaFileResponse{},
	}
	for i := range files {
		detail.Files = append(detail.Files, *s.buildFileResponse(ctx, &files[i]))
	}
	return detail
}

func (s *zoneService) buildFileResponse(ctx context.Context, file *models.MediaFile) *dto.MediaFileResponse {
	url := file.URL
	if url == "" {
		u, err := s.storage.GetURL(ctx, file.StorageKey)
		if err != nil {
			u = fmt.Sprintf("/api/v1/media/%s", file.ID)
		}
		url = u
	}

	return &dto.MediaFileResponse{
		ID:        file.ID,
		EventID:   file.EventID,
		ZoneID:    file.ZoneID,
		FileName:  file.FileName,
		URL:       url,
		MimeType:  file.MimeType,
		Size:      file.Size,
		CreatedAt: file.CreatedAt,
	}
}

func buildZoneResponse(zone *models.Zone, fileCount int) *dto.ZoneResponse {
	tags := zone.TagList()
	if tags == nil {
		tags = []string{}
	}
	return &dto.ZoneResponse{
		ID:          zone.ID,
		EventID:     zone.EventID,
		Title:       zone.Title,
		Description: zone.Description,
		Tags:        tags,
		FileCount:   fileCount,
		CreatedAt:   zone.CreatedAt,
		UpdatedAt:   zone.UpdatedAt,
	}
}

// filterByContentType keeps the files whose MIME type belongs to the
// given family ("image" matches "image/png" and so on). An empty filter
// keeps everything.
func filterByContentType(files []models.MediaFile, contentType string) []models.MediaFile {
	if contentType == "" {
		return files
	}

	prefix := contentType
	if !strings.Contains(prefix, "/") {
		prefix += "/"
	}

	var out []models.MediaFile
	for _, f := range files {
		if strings.HasPrefix(f.MimeType, prefix) || f.MimeType == contentType {
			out = append(out, f)
		}
	}
	return out
}
