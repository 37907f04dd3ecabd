package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for the media-domain error taxonomy.

Three classes matter to callers of the media subsystem:
validation (bad input, per-file or whole-request), not-found (missing,
foreign or soft-deleted resources, indistinguishable on purpose) and
storage (object-store failures, non-fatal where the design says so).
*/

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404. Ownership failures use the same factory so that a foreign
// resource is indistinguishable from a missing one.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrStorage wraps an object-store failure. During batch upload it is
// captured as a per-file failure; on deletion paths it is logged and
// swallowed rather than returned.
func ErrStorage(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "storage", "Object storage operation failed", http.StatusServiceUnavailable)
}

// --- Uploads & media files ---

// ErrFileTooLarge - the file exceeds the configured size limit.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrUnsupportedMediaType - the sniffed MIME type is not allowed.
var ErrUnsupportedMediaType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// ErrNoFilesProvided - upload request carried zero files. This is a
// whole-request violation and aborts before any side effect.
var ErrNoFilesProvided = New(
	CodeValidationFailed,
	"validation",
	"At least one file is required",
	http.StatusBadRequest,
)
