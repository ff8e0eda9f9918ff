package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-golang/internal/storage"
)

// UploadImage handles POST /admin/upload
// It stores the "file" field under the image directory and returns the
// stored filename, to be sent back later as a product's image.
func (h *Handlers) UploadImage(c *gin.Context) {
	// 1. Refuse oversized requests before reading them
	if c.Request.ContentLength > h.Images.MaxBytes {
		h.uploadFailed(c, storage.ErrFileTooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Images.MaxBytes)

	// 2. Get the file from the request
	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			err = storage.ErrFileTooLarge
		default:
			// missing field, empty filename or not a multipart body at all
			err = storage.ErrNoFileSelected
		}
		h.uploadFailed(c, err)
		return
	}

	// 3. Save it under a unique name
	filename, err := h.Images.Save(file)
	if err != nil {
		h.uploadFailed(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "filename": filename})
}

func (h *Handlers) uploadFailed(c *gin.Context, err error) {
	f := describe(err)
	if f.status == http.StatusInternalServerError {
		log.Printf("Failed to store upload: %v", err)
	}
	c.JSON(f.status, gin.H{"success": false, "message": f.message})
}
