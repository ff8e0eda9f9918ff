package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a *multipart.FileHeader the same way net/http does for
// a real upload.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/admin/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestImageStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir, 0)
	store.now = func() time.Time { return time.Unix(1700000000, 0) }

	name, err := store.Save(fileHeader(t, "Camiseta Azul.PNG", []byte("fake png")))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^camiseta-azul_1700000000_[0-9a-f]{8}\.png$`), name)

	saved, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake png"), saved)
}

func TestImageStoreSaveSameNameTwice(t *testing.T) {
	store := NewImageStore(t.TempDir(), 0)

	first, err := store.Save(fileHeader(t, "foto.jpg", []byte("a")))
	require.NoError(t, err)
	second, err := store.Save(fileHeader(t, "foto.jpg", []byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestImageStoreRejects(t *testing.T) {
	tests := []struct {
		name     string
		header   func(t *testing.T) *multipart.FileHeader
		maxBytes int64
		wantErr  error
	}{
		{
			name:    "nil header",
			header:  func(*testing.T) *multipart.FileHeader { return nil },
			wantErr: ErrNoFileSelected,
		},
		{
			name:    "empty filename",
			header:  func(*testing.T) *multipart.FileHeader { return &multipart.FileHeader{} },
			wantErr: ErrNoFileSelected,
		},
		{
			name:    "executable",
			header:  func(t *testing.T) *multipart.FileHeader { return fileHeader(t, "virus.exe", []byte("MZ")) },
			wantErr: ErrUnsupportedFileType,
		},
		{
			name:    "no extension",
			header:  func(t *testing.T) *multipart.FileHeader { return fileHeader(t, "png", []byte("x")) },
			wantErr: ErrUnsupportedFileType,
		},
		{
			name:     "over the cap",
			header:   func(t *testing.T) *multipart.FileHeader { return fileHeader(t, "big.gif", bytes.Repeat([]byte("x"), 64)) },
			maxBytes: 16,
			wantErr:  ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := NewImageStore(dir, tt.maxBytes).Save(tt.header(t))
			require.ErrorIs(t, err, tt.wantErr)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "nothing is written for a rejected upload")
		})
	}
}

func TestAllowed(t *testing.T) {
	for _, name := range []string{"a.png", "a.JPG", "a.jpeg", "a.gif", "a.webp"} {
		assert.True(t, Allowed(name), name)
	}
	for _, name := range []string{"a.svg", "a.png.exe", "a", ""} {
		assert.False(t, Allowed(name), name)
	}
}
