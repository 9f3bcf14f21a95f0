package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"notepad-api/internal/pkg/apperror"

	"github.com/google/uuid"
)

type ImageStore interface {
	Save(r io.Reader, originalName string, size int64) (string, error)
	Delete(path string) error
	Read(path string) ([]byte, error)
}

// DiskImageStore writes uploads under a single base directory. Every path it
// returns or accepts must resolve inside that directory; anything else is
// rejected before touching the filesystem.
type DiskImageStore struct {
	baseDir     string
	maxSize     int64
	allowedExts map[string]struct{}
}

func NewDiskImageStore(baseDir string, maxSize int64, allowedExts []string) (*DiskImageStore, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}

	exts := make(map[string]struct{}, len(allowedExts))
	for _, e := range allowedExts {
		exts[strings.ToLower(e)] = struct{}{}
	}

	return &DiskImageStore{
		baseDir:     abs,
		maxSize:     maxSize,
		allowedExts: exts,
	}, nil
}

// ValidateUpload checks extension and declared size before any bytes are read.
func (s *DiskImageStore) ValidateUpload(originalName string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if _, ok := s.allowedExts[ext]; !ok {
		return apperror.Validation("file_type_not_allowed", fmt.Sprintf("file extension %q is not allowed", ext))
	}
	if size > s.maxSize {
		return apperror.Validation("file_too_large", fmt.Sprintf("maximum allowed file size is %d bytes", s.maxSize))
	}
	return nil
}

func (s *DiskImageStore) Save(r io.Reader, originalName string, size int64) (string, error) {
	if err := s.ValidateUpload(originalName, size); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	name := uuid.New().String() + ext
	path := filepath.Join(s.baseDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// The declared size is client-supplied; cap the actual copy too.
	written, err := io.Copy(dst, io.LimitReader(r, s.maxSize+1))
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if written > s.maxSize {
		os.Remove(path)
		return "", apperror.Validation("file_too_large", fmt.Sprintf("maximum allowed file size is %d bytes", s.maxSize))
	}

	return path, nil
}

func (s *DiskImageStore) Delete(path string) error {
	resolved, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(resolved); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *DiskImageStore) Read(path string) ([]byte, error) {
	resolved, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(resolved)
}

// resolve cleans the path and verifies it stays inside the base directory.
func (s *DiskImageStore) resolve(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(abs, s.baseDir+string(filepath.Separator)) {
		return "", apperror.Validation("invalid_path", "path resolves outside the image storage root")
	}
	return abs, nil
}
