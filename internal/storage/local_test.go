package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()

	s, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "/api/v1/files",
	})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	content := []byte("hello")
	require.NoError(t, s.Save(ctx, "events/e1/a.txt", bytes.NewReader(content), "text/plain"))

	exists, err := s.Exists(ctx, "events/e1/a.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	size, err := s.GetSize(ctx, "events/e1/a.txt")
	require.NoError(t, err)
	assert.EqualValues(t, len(content), size)

	rc, err := s.Get(ctx, "events/e1/a.txt")
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, content, got)

	require.NoError(t, s.Delete(ctx, "events/e1/a.txt"))
	exists, err = s.Exists(ctx, "events/e1/a.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	s := newTestLocalStorage(t)

	assert.NoError(t, s.Delete(context.Background(), "does/not/exist.txt"))
}

func TestLocalStorage_GetURL(t *testing.T) {
	s := newTestLocalStorage(t)

	url, err := s.GetURL(context.Background(), "events/e1/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/files/events/e1/a.txt", url)
}
