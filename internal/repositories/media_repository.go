package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"evently_backend/internal/models"
)

var (
	ErrZoneNotFound = errors.New("zone not found")
	ErrFileNotFound = errors.New("media file not found")
)

type MediaRepository interface {
	// Zone operations
	CreateZone(db *gorm.DB, zone *models.Zone) error
	FindZoneByID(db *gorm.DB, id string) (*models.Zone, error)
	FindZoneWithFiles(db *gorm.DB, id string) (*models.Zone, error)
	FindZonesByEvent(db *gorm.DB, eventID string) ([]models.Zone, error)
	UpdateZoneFields(db *gorm.DB, id string, fields map[string]interface{}) error
	SoftDeleteZone(db *gorm.DB, id string) error
	TouchZone(db *gorm.DB, id string) error

	// File operations
	CreateFile(db *gorm.DB, file *models.MediaFile) error
	FindFileByID(db *gorm.DB, id string) (*models.MediaFile, error)
	FindFilesByZone(db *gorm.DB, zoneID string) ([]models.MediaFile, error)
	FindFilesByEvent(db *gorm.DB, eventID string) ([]models.MediaFile, error)
	CountFilesByZone(db *gorm.DB, zoneID string) (int64, error)
	SoftDeleteFile(db *gorm.DB, id string) error
	SoftDeleteFilesByZone(db *gorm.DB, zoneID string) error
}

type MediaRepositoryImpl struct{}

func NewMediaRepository() MediaRepository {
	return &MediaRepositoryImpl{}
}

// Zone operations

func (r *MediaRepositoryImpl) CreateZone(db *gorm.DB, zone *models.Zone) error {
	return db.Create(zone).Error
}

func (r *MediaRepositoryImpl) FindZoneByID(db *gorm.DB, id string) (*models.Zone, error) {
	var zone models.Zone
	err := db.First(&zone, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}
	return &zone, nil
}

func (r *MediaRepositoryImpl) FindZoneWithFiles(db *gorm.DB, id string) (*models.Zone, error) {
	var zone models.Zone
	err := db.Preload("Files").First(&zone, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}
	return &zone, nil
}

func (r *MediaRepositoryImpl) FindZonesByEvent(db *gorm.DB, eventID string) ([]models.Zone, error) {
	var zones []models.Zone
	err := db.Preload("Files").Where("event_id = ?", eventID).
		Order("created_at ASC").Find(&zones).Error
	return zones, err
}

func (r *MediaRepositoryImpl) UpdateZoneFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	if _, ok := fields["updated_at"]; !ok {
		fields["updated_at"] = time.Now()
	}
	result := db.Model(&models.Zone{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrZoneNotFound
	}
	return nil
}

func (r *MediaRepositoryImpl) SoftDeleteZone(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Zone{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrZoneNotFound
	}
	return nil
}

func (r *MediaRepositoryImpl) TouchZone(db *gorm.DB, id string) error {
	return db.Model(&models.Zone{}).Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}

// File operations

func (r *MediaRepositoryImpl) CreateFile(db *gorm.DB, file *models.MediaFile) error {
	return db.Create(file).Error
}

func (r *MediaRepositoryImpl) FindFileByID(db *gorm.DB, id string) (*models.MediaFile, error) {
	var file models.MediaFile
	err := db.First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *MediaRepositoryImpl) FindFilesByZone(db *gorm.DB, zoneID string) ([]models.MediaFile, error) {
	var files []models.MediaFile
	err := db.Where("zone_id = ?", zoneID).
		Order("created_at ASC").Find(&files).Error
	return files, err
}

func (r *MediaRepositoryImpl) FindFilesByEvent(db *gorm.DB, eventID string) ([]models.MediaFile, error) {
	var files []models.MediaFile
	err := db.Where("event_id = ?", eventID).
		Order("created_at ASC").Find(&files).Error
	return files, err
}

func (r *MediaRepositoryImpl) CountFilesByZone(db *gorm.DB, zoneID string) (int64, error) {
	var count int64
	err := db.Model(&models.MediaFile{}).Where("zone_id = ?", zoneID).
		Count(&count).Error
	return count, err
}

func (r *MediaRepositoryImpl) SoftDeleteFile(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.MediaFile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}

func (r *MediaRepositoryImpl) SoftDeleteFilesByZone(db *gorm.DB, zoneID string) error {
	return db.Where("zone_id = ?", zoneID).Delete(&models.MediaFile{}).Error
}
