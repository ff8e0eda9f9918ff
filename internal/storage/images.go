package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// DefaultMaxBytes is the upload cap used when ImageStore.MaxBytes is zero.
const DefaultMaxBytes int64 = 16 << 20

var (
	ErrNoFileSelected      = errors.New("no file selected")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// ImageStore keeps uploaded product images on the local disk.
type ImageStore struct {
	Dir      string
	MaxBytes int64

	now func() time.Time
}

func NewImageStore(dir string, maxBytes int64) *ImageStore {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &ImageStore{Dir: dir, MaxBytes: maxBytes, now: time.Now}
}

// Allowed reports whether filename has an accepted image extension.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Save stores the uploaded file under Dir and returns the name it was
// stored as. The name is the sanitised original plus a unix timestamp and
// a short random token, e.g. "camiseta-azul_1700000000_1a2b3c4d.png".
func (s *ImageStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil || strings.TrimSpace(fh.Filename) == "" {
		return "", ErrNoFileSelected
	}
	if !Allowed(fh.Filename) {
		return "", ErrUnsupportedFileType
	}
	if fh.Size > s.MaxBytes {
		return "", ErrFileTooLarge
	}

	filename := s.uniqueName(fh.Filename)

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.Dir, filename)
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	// one byte past the cap tells us the header lied about the size
	n, err := io.Copy(dst, io.LimitReader(src, s.MaxBytes+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > s.MaxBytes {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		if errors.Is(err, ErrFileTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("write image file: %w", err)
	}

	return filename, nil
}

func (s *ImageStore) uniqueName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := slug.Make(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if base == "" {
		base = "imagem"
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return fmt.Sprintf("%s_%d_%s%s", base, now().Unix(), uuid.NewString()[:8], ext)
}
