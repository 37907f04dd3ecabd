package services

import (
	"errors"

	"evently_backend/internal/repositories"
	"evently_backend/pkg/apperrors"
)

func handleEventError(err error) error {
	if errors.Is(err, repositories.ErrEventNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}

func handleZoneError(err error) error {
	if errors.Is(err, repositories.ErrZoneNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}

func handleFileError(err error) error {
	if errors.Is(err, repositories.ErrFileNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return apperrors.InternalError(err)
}

// errorKind buckets an error for the per-file failure report.
func errorKind(err error) string {
	var appErr *apperrors.AppError
	if !apperrors.As(err, &appErr) {
		return "InternalError"
	}

	switch appErr.Code {
	case apperrors.CodeValidationFailed, apperrors.CodeLimitExceeded:
		return "ValidationError"
	case apperrors.CodeExternalServiceError:
		return "StorageError"
	default:
		return "InternalError"
	}
}

func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
