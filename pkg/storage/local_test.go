package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadOpenDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	info, err := store.Upload(ctx, 7, "звіт.pdf", "application/pdf", 9, 2026, strings.NewReader("%PDF-1.7 fake"))
	require.NoError(t, err)
	assert.Equal(t, "звіт.pdf", info.Name)
	assert.Equal(t, int64(13), info.Size)
	assert.Equal(t, 9, info.WeekNumber)
	assert.Equal(t, 2026, info.Year)

	rc, got, err := store.Open(ctx, 7, info.ID)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, info.ID, got.ID)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake", string(data))

	require.NoError(t, store.Delete(ctx, 7, info.ID))
	_, err = store.Info(ctx, 7, info.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_ListIsPerUser(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Upload(ctx, 1, "a.pdf", "application/pdf", 8, 2026, strings.NewReader("a"))
	require.NoError(t, err)
	_, err = store.Upload(ctx, 1, "b.pdf", "application/pdf", 9, 2026, strings.NewReader("b"))
	require.NoError(t, err)
	_, err = store.Upload(ctx, 2, "c.pdf", "application/pdf", 9, 2026, strings.NewReader("c"))
	require.NoError(t, err)

	files, err := store.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	files, err = store.List(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestLocalStorage_OpenMissing(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Open(context.Background(), 1, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "report.pdf", sanitizeFilename("../../report.pdf"))
	assert.Equal(t, "звіт тиждень 9.pdf", sanitizeFilename("звіт тиждень 9.pdf"))
	assert.Equal(t, "upload.pdf", sanitizeFilename(""))
}
