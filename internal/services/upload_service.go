package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"gorm.io/gorm"

	"evently_backend/internal/logger"
	"evently_backend/internal/models"
	"evently_backend/internal/repositories"
	"evently_backend/internal/services/dto"
	"evently_backend/internal/storage"
	"evently_backend/pkg/apperrors"
)

type UploadService interface {
	// UploadBatch stores a batch of files for one event. Files are
	// processed one by one; failures are reported per file and never
	// abort the rest of the batch.
	UploadBatch(ctx context.Context, db *gorm.DB, req *dto.BatchUploadRequest) (*dto.BatchUploadResponse, error)

	// AddFilesToZone appends files to an existing zone.
	AddFilesToZone(ctx context.Context, db *gorm.DB, req *dto.AddFilesRequest) (*dto.BatchUploadResponse, error)
}

type uploadService struct {
	eventRepo repositories.EventRepository
	mediaRepo repositories.MediaRepository
	storage   storage.Storage
	config    *dto.FileConfigMedia
}

func NewUploadService(
	eventRepo repositories.EventRepository,
	mediaRepo repositories.MediaRepository,
	store storage.Storage,
	config *dto.FileConfigMedia,
) UploadService {
	return &uploadService{
		eventRepo: eventRepo,
		mediaRepo: mediaRepo,
		storage:   store,
		config:    config,
	}
}

func (s *uploadService) UploadBatch(ctx context.Context, db *gorm.DB, req *dto.BatchUploadRequest) (*dto.BatchUploadResponse, error) {
	if len(req.Files) == 0 {
		return nil, apperrors.ErrNoFilesProvided
	}
	if s.config.MaxBatch > 0 && len(req.Files) > s.config.MaxBatch {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("too many files: at most %d files per request", s.config.MaxBatch))
	}

	// Ownership gate. A foreign event is reported exactly like a
	// missing one.
	event, err := s.eventRepo.FindByIDAndOwner(db, req.EventID, req.UserID)
	if err != nil {
		return nil, handleEventError(err)
	}

	// A zone is only created when the caller asked for a group, sent
	// shared metadata, or sent more than one file.
	var zone *models.Zone
	if req.Group || len(req.Files) > 1 || hasZoneMetadata(req) {
		zone = &models.Zone{
			EventID:     event.ID,
			Title:       req.Title,
			Description: req.Description,
		}
		zone.SetTagList(req.Tags)
		if err := s.mediaRepo.CreateZone(db, zone); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	var zoneID *string
	if zone != nil {
		zoneID = &zone.ID
	}

	// A single ungrouped file has no batch to absorb its failure; the
	// request fails outright.
	if zone == nil && len(req.Files) == 1 {
		file, err := s.processOne(ctx, db, event.ID, nil, req.Files[0])
		if err != nil {
			return nil, err
		}
		return &dto.BatchUploadResponse{
			Successful:      []dto.MediaFileResponse{*s.buildFileResponse(ctx, file)},
			Failed:          []dto.FailedUpload{},
			TotalRequested:  1,
			TotalSuccessful: 1,
		}, nil
	}

	resp := s.processFiles(ctx, db, event.ID, zoneID, req.Files)

	// Never leave behind a zone with zero files.
	if zone != nil {
		if len(resp.Successful) == 0 {
			if err := s.mediaRepo.SoftDeleteZone(db, zone.ID); err != nil {
				logger.CtxWithError(ctx, "failed to remove empty zone", err, "zone_id", zone.ID)
			}
		} else {
			resp.ZoneID = &zone.ID
		}
	}

	return resp, nil
}

func (s *uploadService) AddFilesToZone(ctx context.Context, db *gorm.DB, req *dto.AddFilesRequest) (*dto.BatchUploadResponse, error) {
	if len(req.Files) == 0 {
		return nil, apperrors.ErrNoFilesProvided
	}
	if s.config.MaxBatch > 0 && len(req.Files) > s.config.MaxBatch {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("too many files: at most %d files per request", s.config.MaxBatch))
	}

	zone, err := s.mediaRepo.FindZoneByID(db, req.ZoneID)
	if err != nil {
		return nil, handleZoneError(err)
	}

	if _, err := s.eventRepo.FindByIDAndOwner(db, zone.EventID, req.UserID); err != nil {
		return nil, handleEventError(err)
	}

	resp := s.processFiles(ctx, db, zone.EventID, &zone.ID, req.Files)

	if len(resp.Successful) > 0 {
		resp.ZoneID = &zone.ID
		if err := s.mediaRepo.TouchZone(db, zone.ID); err != nil {
			logger.CtxWithError(ctx, "failed to touch zone", err, "zone_id", zone.ID)
		}
	}

	return resp, nil
}

// processFiles runs the per-file pipeline in request order: validate,
// upload bytes, insert the metadata row. The object is written before
// the row exists; when the insert fails the object is deleted again so
// neither store ends up referencing the other's missing half.
func (s *uploadService) processFiles(ctx context.Context, db *gorm.DB, eventID string, zoneID *string, files []*multipart.FileHeader) *dto.BatchUploadResponse {
	resp := &dto.BatchUploadResponse{
		Successful:     []dto.MediaFileResponse{},
		Failed:         []dto.FailedUpload{},
		TotalRequested: len(files),
	}

	for i, fh := range files {
		file, err := s.processOne(ctx, db, eventID, zoneID, fh)
		if err != nil {
			resp.Failed = append(resp.Failed, dto.FailedUpload{
				FileName:  fh.Filename,
				Index:     i,
				Error:     errorMessage(err),
				ErrorKind: errorKind(err),
			})
			continue
		}
		resp.Successful = append(resp.Successful, *s.buildFileResponse(ctx, file))
	}

	resp.TotalSuccessful = len(resp.Successful)
	resp.TotalFailed = len(resp.Failed)
	return resp
}

func (s *uploadService) processOne(ctx context.Context, db *gorm.DB, eventID string, zoneID *string, fh *multipart.FileHeader) (*models.MediaFile, error) {
	mimeType, err := s.validateFile(fh)
	if err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	key := buildStorageKey(eventID, fh.Filename)

	if err := s.storage.Save(ctx, key, src, mimeType); err != nil {
		return nil, apperrors.ErrStorage(err)
	}

	file := &models.MediaFile{
		EventID:    eventID,
		ZoneID:     zoneID,
		FileName:   fh.Filename,
		StorageKey: key,
		MimeType:   mimeType,
		Size:       fh.Size,
	}
	if url, err := s.storage.GetURL(ctx, key); err == nil {
		file.URL = url
	}

	if err := s.mediaRepo.CreateFile(db, file); err != nil {
		// The object is already in storage. Remove it so the stores
		// stay consistent; a failed cleanup only leaks bytes, never
		// metadata.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			logger.CtxWithError(ctx, "failed to remove orphaned object", delErr, "key", key)
		}
		return nil, apperrors.InternalError(err)
	}

	return file, nil
}

func (s *uploadService) validateFile(fh *multipart.FileHeader) (string, error) {
	if s.config.MaxSize > 0 && fh.Size > s.config.MaxSize {
		return "", apperrors.ErrFileTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	// Sniff the real content type instead of trusting the client header.
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	mimeType := mtype.String()

	allowed := false
	for _, allowedType := range s.config.AllowedTypes {
		if mtype.Is(allowedType) {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", apperrors.ErrUnsupportedMediaType
	}

	return mimeType, nil
}

func (s *uploadService) buildFileResponse(ctx context.Context, file *models.MediaFile) *dto.MediaFileResponse {
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

func hasZoneMetadata(req *dto.BatchUploadRequest) bool {
	return req.Title != "" || req.Description != "" || len(req.Tags) > 0
}

func buildStorageKey(eventID, filename string) string {
	ext := filepath.Ext(filename)
	name := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), randomHex(8), ext)
	return filepath.Join("events", eventID, name)
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
