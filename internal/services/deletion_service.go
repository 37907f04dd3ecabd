package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"evently_backend/internal/logger"
	"evently_backend/internal/models"
	"evently_backend/internal/repositories"
	"evently_backend/internal/services/dto"
	"evently_backend/internal/storage"
	"evently_backend/pkg/apperrors"
)

type DeletionService interface {
	// DeleteFile removes one file. When it was the last live file of
	// its zone the zone is removed with it.
	DeleteFile(ctx context.Context, db *gorm.DB, userID, fileID string) (*dto.DeleteResponse, error)

	// DeleteZone removes a zone and every file in it.
	DeleteZone(ctx context.Context, db *gorm.DB, userID, zoneID string) (*dto.DeleteResponse, error)
}

type deletionService struct {
	eventRepo repositories.EventRepository
	mediaRepo repositories.MediaRepository
	storage   storage.Storage
}

func NewDeletionService(
	eventRepo repositories.EventRepository,
	mediaRepo repositories.MediaRepository,
	store storage.Storage,
) DeletionService {
	return &deletionService{
		eventRepo: eventRepo,
		mediaRepo: mediaRepo,
		storage:   store,
	}
}

func (s *deletionService) DeleteFile(ctx context.Context, db *gorm.DB, userID, fileID string) (*dto.DeleteResponse, error) {
	// An already deleted file is invisible here, so a repeated delete
	// reports not-found instead of succeeding twice.
	file, err := s.mediaRepo.FindFileByID(db, fileID)
	if err != nil {
		return nil, handleFileError(err)
	}

	if _, err := s.eventRepo.FindByIDAndOwner(db, file.EventID, userID); err != nil {
		return nil, handleEventError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.mediaRepo.SoftDeleteFile(tx, file.ID); err != nil {
		return nil, handleFileError(err)
	}

	zoneDeleted := false
	if file.ZoneID != nil {
		zoneDeleted, err = s.reapIfEmpty(tx, *file.ZoneID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	// The metadata row is gone; losing the bytes cleanup only leaks
	// storage, so it is logged and not surfaced.
	s.deleteObjects(ctx, []models.MediaFile{*file})

	return &dto.DeleteResponse{DeletedFiles: 1, ZoneDeleted: zoneDeleted}, nil
}

func (s *deletionService) DeleteZone(ctx context.Context, db *gorm.DB, userID, zoneID string) (*dto.DeleteResponse, error) {
	zone, err := s.mediaRepo.FindZoneByID(db, zoneID)
	if err != nil {
		return nil, handleZoneError(err)
	}

	if _, err := s.eventRepo.FindByIDAndOwner(db, zone.EventID, userID); err != nil {
		return nil, handleEventError(err)
	}

	files, err := s.mediaRepo.FindFilesByZone(db, zone.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.mediaRepo.SoftDeleteFilesByZone(tx, zone.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.mediaRepo.SoftDeleteZone(tx, zone.ID); err != nil {
		return nil, handleZoneError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.deleteObjects(ctx, files)

	return &dto.DeleteResponse{DeletedFiles: len(files), ZoneDeleted: true}, nil
}

// reapIfEmpty removes the zone when it has no live files left. Every
// path that can empty a zone funnels through here, so the "no live
// empty zones" rule has a single owner.
func (s *deletionService) reapIfEmpty(tx *gorm.DB, zoneID string) (bool, error) {
	count, err := s.mediaRepo.CountFilesByZone(tx, zoneID)
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	if count > 0 {
		return false, nil
	}

	if err := s.mediaRepo.SoftDeleteZone(tx, zoneID); err != nil {
		// A concurrent delete already reaped it.
		if errors.Is(err, repositories.ErrZoneNotFound) {
			return true, nil
		}
		return false, apperrors.InternalError(err)
	}
	return true, nil
}

func (s *deletionService) deleteObjects(ctx context.Context, files []models.MediaFile) {
	for _, f := range files {
		if err := s.storage.Delete(ctx, f.StorageKey); err != nil {
			logger.CtxWithError(ctx, "failed to delete object", err,
				"key", f.StorageKey, "file_id", f.ID)
		}
	}
}
