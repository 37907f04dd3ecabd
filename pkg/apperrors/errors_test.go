package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainFactories(t *testing.T) {
	cause := errors.New("record not found")

	nf := ErrNotFound(cause)
	assert.Equal(t, CodeNotFound, nf.Code)
	assert.Equal(t, http.StatusNotFound, nf.HTTPCode)
	assert.ErrorIs(t, nf, cause)

	st := ErrStorage(cause)
	assert.Equal(t, CodeExternalServiceError, st.Code)
	assert.Equal(t, http.StatusServiceUnavailable, st.HTTPCode)

	assert.Equal(t, CodeLimitExceeded, ErrFileTooLarge.Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, ErrFileTooLarge.HTTPCode)
	assert.Equal(t, http.StatusBadRequest, ErrNoFilesProvided.HTTPCode)
}

func TestMarshalJSONHidesWrappedError(t *testing.T) {
	appErr := Wrap(errors.New("secret database detail"), CodeDatabaseError, "db", "Database error", http.StatusInternalServerError)

	data, err := json.Marshal(appErr)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret database detail")
	assert.Contains(t, string(data), "Database error")
}

func TestAsAppError(t *testing.T) {
	wrapped := ErrNotFound(errors.New("missing"))

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
