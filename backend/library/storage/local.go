package storage

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxUploadBytes caps a single upload at 100 MiB.
const MaxUploadBytes = 100 << 20

// AllowedMimeTypes is the closed set of accepted video content kinds.
var AllowedMimeTypes = []string{
	"video/mp4",
	"video/mpeg",
	"video/quicktime",
	"video/webm",
	"video/x-msvideo",
}

// IsAllowedMimeType reports whether mimeType is an accepted video kind.
func IsAllowedMimeType(mimeType string) bool {
	for _, m := range AllowedMimeTypes {
		if m == mimeType {
			return true
		}
	}
	return false
}

// GenerateStoredName builds a collision-resistant server-side filename from
// a timestamp, a random suffix and the original extension. The client name
// never appears in it.
func GenerateStoredName(originalName string) string {
	uniqueSuffix := fmt.Sprintf("%d-%09d", time.Now().UnixMilli(), rand.Int63n(1_000_000_000))
	return "video-" + uniqueSuffix + strings.ToLower(filepath.Ext(originalName))
}

// LocalStore persists uploaded binaries under a single directory on the
// local filesystem. Stored filenames are the only public reference to them.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		return nil, errors.New("upload directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the storage directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a generated name and returns that name.
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	storedName := GenerateStoredName(file.Filename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(s.dir, storedName), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create stored file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write stored file: %w", err)
	}
	return storedName, nil
}

// Remove deletes a stored binary. The name must resolve inside the storage
// directory.
func (s *LocalStore) Remove(storedName string) error {
	fullPath := filepath.Join(s.dir, storedName)
	if !strings.HasPrefix(filepath.Clean(fullPath), filepath.Clean(s.dir)+string(os.PathSeparator)) {
		return errors.New("invalid stored filename")
	}
	return os.Remove(fullPath)
}
