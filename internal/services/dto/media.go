package dto

import (
	"mime/multipart"
	"time"
)

// ============================================
// REQUEST STRUCTURES
// ============================================

// BatchUploadRequest carries a batch of files for one event.
type BatchUploadRequest struct {
	UserID      string                  `json:"-"` // from auth context
	EventID     string                  `json:"-"` // from URL
	Group       bool                    `form:"group"`
	Title       string                  `form:"title" binding:"omitempty,max=200"`
	Description string                  `form:"description" binding:"omitempty,max=2000"`
	Tags        []string                `form:"tags" binding:"omitempty,max=20,dive,max=50"`
	Files       []*multipart.FileHeader `json:"-"`
}

// AddFilesRequest appends files to an existing zone.
type AddFilesRequest struct {
	UserID string                  `json:"-"`
	ZoneID string                  `json:"-"`
	Files  []*multipart.FileHeader `json:"-"`
}

// UpdateZoneRequest carries a partial metadata update.
// Nil fields are left untouched.
type UpdateZoneRequest struct {
	Title       *string   `json:"title" binding:"omitempty,max=200"`
	Description *string   `json:"description" binding:"omitempty,max=2000"`
	Tags        *[]string `json:"tags" binding:"omitempty,max=20,dive,max=50"`
}

// FileConfigMedia holds runtime upload limits.
type FileConfigMedia struct {
	MaxSize      int64
	AllowedTypes []string
	MaxBatch     int
}

// ============================================
// RESPONSE STRUCTURES
// ============================================

// MediaFileResponse describes one stored file.
type MediaFileResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	ZoneID    *string   `json:"zone_id,omitempty"`
	FileName  string    `json:"file_name"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// FailedUpload describes a file the batch could not accept.
type FailedUpload struct {
	FileName  string `json:"file_name"`
	Index     int    `json:"index"`
	Error     string `json:"error"`
	ErrorKind string `json:"error_kind"` // ValidationError, StorageError, InternalError
}

// BatchUploadResponse reports the outcome of a batch upload. Partial
// and even total per-file failure is reported here, not as a request
// error.
type BatchUploadResponse struct {
	ZoneID          *string             `json:"zone_id,omitempty"`
	Successful      []MediaFileResponse `json:"successful"`
	Failed          []FailedUpload      `json:"failed"`
	TotalRequested  int                 `json:"total_requested"`
	TotalSuccessful int                 `json:"total_successful"`
	TotalFailed     int                 `json:"total_failed"`
}

// ZoneResponse describes zone metadata.
type ZoneResponse struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	FileCount   int       `json:"file_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ZoneDetailResponse is a zone with its files.
type ZoneDetailResponse struct {
	ZoneResponse
	Files []MediaFileResponse `json:"files"`
}

// ZoneListResponse lists zones of one event.
type ZoneListResponse struct {
	Zones      []ZoneDetailResponse `json:"zones"`
	TotalZones int                  `json:"total_zones"`
	TotalFiles int                  `json:"total_files"`
}

// MediaListResponse is a flat file listing for one event.
type MediaListResponse struct {
	Files []MediaFileResponse `json:"files"`
	Total int                 `json:"total"`
}

// DeleteResponse reports what a delete removed.
type DeleteResponse struct {
	DeletedFiles int  `json:"deleted_files"`
	ZoneDeleted  bool `json:"zone_deleted"`
}
