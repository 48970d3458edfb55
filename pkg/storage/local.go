package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStorage implements Storage on the local filesystem. Files live under
// basePath/<userID>/ with a uuid-prefixed name; metadata sits in a .meta
// sidecar directory as JSON.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates the base directory if needed.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

func (s *LocalStorage) userDir(userID int64) string {
	return filepath.Join(s.basePath, fmt.Sprintf("user-%d", userID))
}

func (s *LocalStorage) metaPath(userID int64, fileID uuid.UUID) string {
	return filepath.Join(s.userDir(userID), ".meta", fileID.String()+".json")
}

// Upload stores a file and returns its metadata.
func (s *LocalStorage) Upload(ctx context.Context, userID int64, filename, contentType string, weekNumber, year int, r io.Reader) (*FileInfo, error) {
	fileID := uuid.New()

	dir := s.userDir(userID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create user directory: %w", err)
	}

	storedName := fmt.Sprintf("%s_%s", fileID.String()[:8], sanitizeFilename(filename))
	path := filepath.Join(dir, storedName)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	info := &FileInfo{
		ID:          fileID,
		Name:        filename,
		Size:        size,
		ContentType: contentType,
		WeekNumber:  weekNumber,
		Year:        year,
		Path:        storedName,
		CreatedAt:   time.Now(),
	}

	if err := s.saveMetadata(userID, fileID, info); err != nil {
		os.Remove(path)
		return nil, err
	}

	return info, nil
}

// Open returns a reader for a stored file.
func (s *LocalStorage) Open(ctx context.Context, userID int64, fileID uuid.UUID) (io.ReadCloser, *FileInfo, error) {
	info, err := s.Info(ctx, userID, fileID)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(filepath.Join(s.userDir(userID), info.Path))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, info, nil
}

// Info returns metadata without opening the file.
func (s *LocalStorage) Info(ctx context.Context, userID int64, fileID uuid.UUID) (*FileInfo, error) {
	data, err := os.ReadFile(s.metaPath(userID, fileID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var info FileInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return &info, nil
}

// List returns all stored files for a user, newest first.
func (s *LocalStorage) List(ctx context.Context, userID int64) ([]*FileInfo, error) {
	metaDir := filepath.Join(s.userDir(userID), ".meta")
	entries, err := os.ReadDir(metaDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*FileInfo{}, nil
		}
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}

	files := make([]*FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		info, err := s.Info(ctx, userID, id)
		if err != nil {
			continue
		}
		files = append(files, info)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	return files, nil
}

// Delete removes a stored file and its metadata.
func (s *LocalStorage) Delete(ctx context.Context, userID int64, fileID uuid.UUID) error {
	info, err := s.Info(ctx, userID, fileID)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.userDir(userID), info.Path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	os.Remove(s.metaPath(userID, fileID))
	return nil
}

func (s *LocalStorage) saveMetadata(userID int64, fileID uuid.UUID, info *FileInfo) error {
	metaDir := filepath.Join(s.userDir(userID), ".meta")
	if err := os.MkdirAll(metaDir, 0755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(s.metaPath(userID, fileID), data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

// sanitizeFilename strips path separators and control characters so a stored
// name cannot escape the user directory.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "upload.pdf"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r < 0x20:
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "upload.pdf"
	}
	return b.String()
}
