package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"evently_backend/internal/models"
	"evently_backend/internal/repositories"
	"evently_backend/internal/services/dto"
)

// pngHeader is enough for content sniffing to detect image/png.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

func testUploadConfig() *dto.FileConfigMedia {
	return &dto.FileConfigMedia{
		MaxSize:      100 * 1024 * 1024,
		AllowedTypes: []string{"image/png", "image/jpeg", "video/mp4", "application/pdf"},
		MaxBatch:     20,
	}
}

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func makeFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("files", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := multipart.NewReader(body, w.Boundary())
	form, err := r.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["files"][0]
}

// --- fake event repository ---

type fakeEventRepo struct {
	events map[string]*models.Event
}

func newFakeEventRepo(events ...*models.Event) *fakeEventRepo {
	r := &fakeEventRepo{events: map[string]*models.Event{}}
	for _, e := range events {
		r.events[e.ID] = e
	}
	return r
}

func (r *fakeEventRepo) Create(_ *gorm.DB, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.CreatedAt = time.Now()
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) FindByIDAndOwner(_ *gorm.DB, id, ownerID string) (*models.Event, error) {
	e, ok := r.events[id]
	if !ok || e.OwnerID != ownerID {
		return nil, repositories.ErrEventNotFound
	}
	return e, nil
}

func (r *fakeEventRepo) FindByOwner(_ *gorm.DB, ownerID string) ([]models.Event, error) {
	var out []models.Event
	for _, e := range r.events {
		if e.OwnerID == ownerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

// --- fake media repository ---

type fakeMediaRepo struct {
	zones map[string]*models.Zone
	files map[string]*models.MediaFile

	deletedZones map[string]bool
	deletedFiles map[string]bool

	createFileErr  error
	createFileErrN int // fail the Nth CreateFile call, 1-based; 0 means every call
	createFileCall int
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{
		zones:        map[string]*models.Zone{},
		files:        map[string]*models.MediaFile{},
		deletedZones: map[string]bool{},
		deletedFiles: map[string]bool{},
	}
}

func (r *fakeMediaRepo) CreateZone(_ *gorm.DB, zone *models.Zone) error {
	if zone.ID == "" {
		zone.ID = uuid.NewString()
	}
	zone.CreatedAt = time.Now()
	zone.UpdatedAt = zone.CreatedAt
	r.zones[zone.ID] = zone
	return nil
}

func (r *fakeMediaRepo) FindZoneByID(_ *gorm.DB, id string) (*models.Zone, error) {
	z, ok := r.zones[id]
	if !ok || r.deletedZones[id] {
		return nil, repositories.ErrZoneNotFound
	}
	// Hand out a copy, like a real row scan would.
	cp := *z
	return &cp, nil
}

func (r *fakeMediaRepo) FindZoneWithFiles(db *gorm.DB, id string) (*models.Zone, error) {
	z, err := r.FindZoneByID(db, id)
	if err != nil {
		return nil, err
	}
	files, _ := r.FindFilesByZone(db, id)
	cp := *z
	cp.Files = files
	return &cp, nil
}

func (r *fakeMediaRepo) FindZonesByEvent(db *gorm.DB, eventID string) ([]models.Zone, error) {
	var out []models.Zone
	for id, z := range r.zones {
		if z.EventID != eventID || r.deletedZones[id] {
			continue
		}
		files, _ := r.FindFilesByZone(db, id)
		cp := *z
		cp.Files = files
		out = append(out, cp)
	}
	return out, nil
}

func (r *fakeMediaRepo) UpdateZoneFields(_ *gorm.DB, id string, fields map[string]interface{}) error {
	z, ok := r.zones[id]
	if !ok || r.deletedZones[id] {
		return repositories.ErrZoneNotFound
	}
	if v, ok := fields["title"].(string); ok {
		z.Title = v
	}
	if v, ok := fields["description"].(string); ok {
		z.Description = v
	}
	if v, ok := fields["tags"].(string); ok {
		z.Tags = v
	}
	if v, ok := fields["updated_at"].(time.Time); ok {
		z.UpdatedAt = v
	} else {
		z.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeMediaRepo) SoftDeleteZone(_ *gorm.DB, id string) error {
	if _, ok := r.zones[id]; !ok || r.deletedZones[id] {
		return repositories.ErrZoneNotFound
	}
	r.deletedZones[id] = true
	return nil
}

func (r *fakeMediaRepo) TouchZone(_ *gorm.DB, id string) error {
	if z, ok := r.zones[id]; ok && !r.deletedZones[id] {
		z.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeMediaRepo) CreateFile(_ *gorm.DB, file *models.MediaFile) error {
	r.createFileCall++
	if r.createFileErr != nil && (r.createFileErrN == 0 || r.createFileErrN == r.createFileCall) {
		return r.createFileErr
	}
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	file.CreatedAt = time.Now()
	r.files[file.ID] = file
	return nil
}

func (r *fakeMediaRepo) FindFileByID(_ *gorm.DB, id string) (*models.MediaFile, error) {
	f, ok := r.files[id]
	if !ok || r.deletedFiles[id] {
		return nil, repositories.ErrFileNotFound
	}
	return f, nil
}

func (r *fakeMediaRepo) FindFilesByZone(_ *gorm.DB, zoneID string) ([]models.MediaFile, error) {
	var out []models.MediaFile
	for id, f := range r.files {
		if f.ZoneID != nil && *f.ZoneID == zoneID && !r.deletedFiles[id] {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeMediaRepo) FindFilesByEvent(_ *gorm.DB, eventID string) ([]models.MediaFile, error) {
	var out []models.MediaFile
	for id, f := range r.files {
		if f.EventID == eventID && !r.deletedFiles[id] {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeMediaRepo) CountFilesByZone(_ *gorm.DB, zoneID string) (int64, error) {
	var count int64
	for id, f := range r.files {
		if f.ZoneID != nil && *f.ZoneID == zoneID && !r.deletedFiles[id] {
			count++
		}
	}
	return count, nil
}

func (r *fakeMediaRepo) SoftDeleteFile(_ *gorm.DB, id string) error {
	if _, ok := r.files[id]; !ok || r.deletedFiles[id] {
		return repositories.ErrFileNotFound
	}
	r.deletedFiles[id] = true
	return nil
}

func (r *fakeMediaRepo) SoftDeleteFilesByZone(_ *gorm.DB, zoneID string) error {
	for id, f := range r.files {
		if f.ZoneID != nil && *f.ZoneID == zoneID {
			r.deletedFiles[id] = true
		}
	}
	return nil
}

func (r *fakeMediaRepo) liveZone(id string) bool {
	_, ok := r.zones[id]
	return ok && !r.deletedZones[id]
}

func (r *fakeMediaRepo) liveFile(id string) bool {
	_, ok := r.files[id]
	return ok && !r.deletedFiles[id]
}

// --- fake storage ---

type fakeStorage struct {
	objects map[string][]byte

	saveCalls  int
	failSaveOn map[int]error // 1-based call index

	deleteKeys []string
	deleteErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Save(_ context.Context, path string, reader io.Reader, _ string) error {
	s.saveCalls++
	if err, ok := s.failSaveOn[s.saveCalls]; ok {
		return err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.objects[path] = data
	return nil
}

func (s *fakeStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.objects[path]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(_ context.Context, path string) error {
	s.deleteKeys = append(s.deleteKeys, path)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, path)
	return nil
}

func (s *fakeStorage) Exists(_ context.Context, path string) (bool, error) {
	_, ok := s.objects[path]
	return ok, nil
}

func (s *fakeStorage) GetURL(_ context.Context, path string) (string, error) {
	return "/files/" + path, nil
}

func (s *fakeStorage) GetSignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "/files/" + path + "?signed=1", nil
}

func (s *fakeStorage) GetSize(_ context.Context, path string) (int64, error) {
	data, ok := s.objects[path]
	if !ok {
		return 0, fmt.Errorf("object not found: %s", path)
	}
	return int64(len(data)), nil
}
