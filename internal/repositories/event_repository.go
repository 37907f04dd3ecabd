package repositories

import (
	"errors"

	"gorm.io/gorm"

	"evently_backend/internal/models"
)

var ErrEventNotFound = errors.New("event not found")

// EventRepository covers what the media subsystem needs from its parent
// aggregate: creation for the thin collaborator API plus the ownership
// lookups every media operation starts with.
type EventRepository interface {
	Create(db *gorm.DB, event *models.Event) error
	FindByIDAndOwner(db *gorm.DB, id, ownerID string) (*models.Event, error)
	FindByOwner(db *gorm.DB, ownerID string) ([]models.Event, error)
}

type EventRepositoryImpl struct{}

func NewEventRepository() EventRepository {
	return &EventRepositoryImpl{}
}

func (r *EventRepositoryImpl) Create(db *gorm.DB, event *models.Event) error {
	return db.Create(event).Error
}

func (r *EventRepositoryImpl) FindByIDAndOwner(db *gorm.DB, id, ownerID string) (*models.Event, error) {
	var event models.Event
	err := db.First(&event, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) FindByOwner(db *gorm.DB, ownerID string) ([]models.Event, error) {
	var events []models.Event
	err := db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").Find(&events).Error
	return events, err
}
