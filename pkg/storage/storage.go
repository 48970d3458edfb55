// Package storage keeps the original PDF files behind imported reports so a
// manager can pull up what was actually submitted.
package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a stored file does not exist.
var ErrNotFound = errors.New("storage: file not found")

// FileInfo describes a stored report original.
type FileInfo struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	WeekNumber  int       `json:"weekNumber"`
	Year        int       `json:"year"`
	Path        string    `json:"path"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Storage archives report originals per user.
type Storage interface {
	// Upload stores a file and returns its metadata.
	Upload(ctx context.Context, userID int64, filename, contentType string, weekNumber, year int, r io.Reader) (*FileInfo, error)

	// Open returns a reader for a stored file.
	Open(ctx context.Context, userID int64, fileID uuid.UUID) (io.ReadCloser, *FileInfo, error)

	// Info returns metadata without opening the file.
	Info(ctx context.Context, userID int64, fileID uuid.UUID) (*FileInfo, error)

	// List returns all stored files for a user, newest first.
	List(ctx context.Context, userID int64) ([]*FileInfo, error)

	// Delete removes a stored file and its metadata.
	Delete(ctx context.Context, userID int64, fileID uuid.UUID) error
}
