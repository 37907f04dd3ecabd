package services

import (
	"context"

	"gorm.io/gorm"

	"evently_backend/internal/models"
	"evently_backend/internal/repositories"
	"evently_backend/internal/services/dto"
	"evently_backend/pkg/apperrors"
)

type EventService interface {
	CreateEvent(ctx context.Context, db *gorm.DB, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEvent(ctx context.Context, db *gorm.DB, userID, eventID string) (*dto.EventResponse, error)
	ListEvents(ctx context.Context, db *gorm.DB, userID string) (*dto.EventListResponse, error)
}

type eventService struct {
	eventRepo repositories.EventRepository
}

func NewEventService(eventRepo repositories.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, db *gorm.DB, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	event := &models.Event{
		OwnerID:     req.UserID,
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}

	if err := s.eventRepo.Create(db, event); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildEventResponse(event), nil
}

func (s *eventService) GetEvent(ctx context.Context, db *gorm.DB, userID, eventID string) (*dto.EventResponse, error) {
	event, err := s.eventRepo.FindByIDAndOwner(db, eventID, userID)
	if err != nil {
		return nil, handleEventError(err)
	}
	return buildEventResponse(event), nil
}

func (s *eventService) ListEvents(ctx context.Context, db *gorm.DB, userID string) (*dto.EventListResponse, error) {
	events, err := s.eventRepo.FindByOwner(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.EventListResponse{Events: []dto.EventResponse{}, Total: len(events)}
	for i := range events {
		resp.Events = append(resp.Events, *buildEventResponse(&events[i]))
	}
	return resp, nil
}

func buildEventResponse(event *models.Event) *dto.EventResponse {
	return &dto.EventResponse{
		ID:          event.ID,
		OwnerID:     event.OwnerID,
		Title:       event.Title,
		Description: event.Description,
		StartsAt:    event.StartsAt,
		EndsAt:      event.EndsAt,
		CreatedAt:   event.CreatedAt,
	}
}
