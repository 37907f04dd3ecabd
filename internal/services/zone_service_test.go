package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evently_backend/internal/models"
	"evently_backend/internal/services/dto"
	"evently_backend/pkg/apperrors"
)

func newZoneFixture(t *testing.T) (*fakeMediaRepo, ZoneService) {
	t.Helper()

	eventRepo := newFakeEventRepo(&models.Event{
		BaseModelWithDeleted: models.BaseModelWithDeleted{
			BaseModel: models.BaseModel{ID: testEventID},
		},
		OwnerID: testUserID,
	})
	mediaRepo := newFakeMediaRepo()
	svc := NewZoneService(eventRepo, mediaRepo, newFakeStorage())

	return mediaRepo, svc
}

func strPtr(s string) *string { return &s }

func TestUpdateZone_PartialUpdate(t *testing.T) {
	mediaRepo, svc := newZoneFixture(t)

	zone := &models.Zone{EventID: testEventID, Title: "Old title", Description: "Old description"}
	zone.SetTagList([]string{"old", "tags"})
	require.NoError(t, mediaRepo.CreateZone(nil, zone))

	resp, err := svc.UpdateZone(context.Background(), nil, testUserID, zone.ID, &dto.UpdateZoneRequest{
		Title: strPtr("New title"),
	})
	require.NoError(t, err)

	// Only the provided field changes.
	assert.Equal(t, "New title", resp.Title)
	assert.Equal(t, "Old description", resp.Description)
	assert.Equal(t, []string{"old", "tags"}, resp.Tags)

	stored := mediaRepo.zones[zone.ID]
	assert.Equal(t, "New title", stored.Title)
	assert.Equal(t, "Old description", stored.Description)
}

func TestUpdateZone_ReturnsFreshTimestamp(t *testing.T) {
	mediaRepo, svc := newZoneFixture(t)

	zone := &models.Zone{EventID: testEventID, Title: "Old title"}
	require.NoError(t, mediaRepo.CreateZone(nil, zone))
	mediaRepo.zones[zone.ID].UpdatedAt = time.Now().Add(-24 * time.Hour)

	resp, err := svc.UpdateZone(context.Background(), nil, testUserID, zone.ID, &dto.UpdateZoneRequest{
		Title: strPtr("New title"),
	})
	require.NoError(t, err)

	// The response carries the bumped timestamp, not the one the row
	// had before the update.
	assert.WithinDuration(t, time.Now(), resp.UpdatedAt, time.Minute)
	assert.Equal(t, resp.UpdatedAt, mediaRepo.zones[zone.ID].UpdatedAt)
}

func TestUpdateZone_ClearTags(t *testing.T) {
	mediaRepo, svc := newZoneFixture(t)

	zone := &models.Zone{EventID: testEventID}
	zone.SetTagList([]string{"a", "b"})
	require.NoError(t, mediaRepo.CreateZone(nil, zone))

	empty := []string{}
	resp, err := svc.UpdateZone(context.Background(), nil, testUserID, zone.ID, &dto.UpdateZoneRequest{
		Tags: &empty,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Tags)
	assert.Empty(t, mediaRepo.zones[zone.ID].Tags)
}

func TestUpdateZone_NoFields(t *testing.T) {
	mediaRepo, svc := newZoneFixture(t)

	zone := &models.Zone{EventID: testEventID}
	require.NoError(t, mediaRepo.CreateZone(nil, zone))

	_, err := svc.UpdateZone(context.Background(), nil, testUserID, zone.ID, &dto.UpdateZoneRequest{})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestUpdateZone_NotFound(t *testing.T) {
	_, svc := newZoneFixture(t)

	_, err := svc.UpdateZone(context.Background(), nil, testUserID, "missing", &dto.UpdateZoneRequest{
		Title: strPtr("x"),
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestGetZone_ReturnsFiles(t *testing.T) {
	mediaRepo, svc := newZoneFixture(t)

	zone := &models.Zone{EventID: testEventID, Title: "Stage"}
	require.NoError(t, mediaRepo.CreateZone(nil, zone))
	for i := 0; i < 3; i++ {
		require.NoError(t, mediaRepo.CreateFile(nil, &models.MediaFile{
			EventID:    testEventID,
			ZoneID:     &zone.ID,
			FileName:   "f.png",
			StorageKey: "k",
			MimeType:   "image/png",
		}))
	}

	resp, err := svc.GetZone(context.Background(), nil, testUserID, zone.ID)
	require.NoError(t, err)

	assert.Equal(t, "Stage", resp.Title)
	assert.Equal(t, 3, resp.FileCount)
	assert.Len(t, resp.Files, 3)
}

func TestGetZone_ForeignOwnerReportsNotFound(t *testing.T) {
	mediaRepo, svc := newZoneFixture(t)

	zone := &models.Zone{EventID: testEventID}
	require.NoError(t, mediaRepo.CreateZone(nil, zone))

	_, err := svc.GetZone(context.Background(), nil, "intruder", zone.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestListZones_ContentTypeFilter(t *testing.T) {
	mediaRepo, svc := newZoneFixture(t)

	imageZone := &models.Zone{EventID: testEventID, Title: "Photos"}
	require.NoError(t, mediaRepo.CreateZone(nil, imageZone))
	require.NoError(t, mediaRepo.CreateFile(nil, &models.MediaFile{
		EventID: testEventID, ZoneID: &imageZone.ID, FileName: "p.png", StorageKey: "p", MimeType: "image/png",
	}))

	videoZone := &models.Zone{EventID: testEventID, Title: "Clips"}
	require.NoError(t, mediaRepo.CreateZone(nil, videoZone))
	require.NoError(t, mediaRepo.CreateFile(nil, &models.MediaFile{
		EventID: testEventID, ZoneID: &videoZone.ID, FileName: "v.mp4", StorageKey: "v", MimeType: "video/mp4",
	}))

	all, err := svc.ListZones(context.Background(), nil, testUserID, testEventID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalZones)
	assert.Equal(t, 2, all.TotalFiles)

	images, err := svc.ListZones(context.Background(), nil, testUserID, testEventID, "image")
	require.NoError(t, err)
	require.Equal(t, 1, images.TotalZones)
	assert.Equal(t, "Photos", images.Zones[0].Title)
	require.Len(t, images.Zones[0].Files, 1)
	assert.Equal(t, "image/png", images.Zones[0].Files[0].MimeType)
}

func TestListEventMedia_FlatListing(t *testing.T) {
	mediaRepo, svc := newZoneFixture(t)

	zone := &models.Zone{EventID: testEventID}
	require.NoError(t, mediaRepo.CreateZone(nil, zone))
	require.NoError(t, mediaRepo.CreateFile(nil, &models.MediaFile{
		EventID: testEventID, ZoneID: &zone.ID, FileName: "grouped.png", StorageKey: "g", MimeType: "image/png",
	}))
	require.NoError(t, mediaRepo.CreateFile(nil, &models.MediaFile{
		EventID: testEventID, FileName: "loose.png", StorageKey: "l", MimeType: "image/png",
	}))

	resp, err := svc.ListEventMedia(context.Background(), nil, testUserID, testEventID)
	require.NoError(t, err)

	// Grouped and ungrouped files both show up in the flat listing.
	assert.Equal(t, 2, resp.Total)
}

func TestGetFile_ForeignOwnerReportsNotFound(t *testing.T) {
	mediaRepo, svc := newZoneFixture(t)

	file := &models.MediaFile{EventID: testEventID, FileName: "a.png", StorageKey: "a"}
	require.NoError(t, mediaRepo.CreateFile(nil, file))

	_, err := svc.GetFile(context.Background(), nil, "intruder", file.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
