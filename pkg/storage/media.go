package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaStorage persists uploaded files on disk under a media root.
type MediaStorage struct {
	root string
}

// NewMediaStorage ensures the media root exists and returns a handle.
func NewMediaStorage(root string) (*MediaStorage, error) {
	if root == "" {
		root = "./media"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &MediaStorage{root: root}, nil
}

var allowedImageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
	".avif": {},
}

// SaveUpload stores a multipart upload under the given subdirectory and
// returns the path relative to the media root.
func (s *MediaStorage) SaveUpload(subdir string, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedImageExts[ext]; !ok {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	rel := filepath.Join(subdir, uuid.NewString()+ext)
	dst := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("prepare media directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close() //nolint:errcheck

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return filepath.ToSlash(rel), nil
}

// Delete removes a stored file if present.
func (s *MediaStorage) Delete(rel string) error {
	if rel == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.root, rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}

// Exists reports whether the relative path resolves to a stored file.
func (s *MediaStorage) Exists(rel string) bool {
	if rel == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(s.root, rel))
	return err == nil && !info.IsDir()
}

// Root exposes the media root for static serving.
func (s *MediaStorage) Root() string {
	return s.root
}
