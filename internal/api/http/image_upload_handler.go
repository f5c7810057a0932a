package http

import (
	"io"
	"net/http"

	"rental-pricing-backend/internal/service"
)

// ImageUploadHandler handles product image uploads and downloads
type ImageUploadHandler struct {
	images      service.ProductImageService
	maxFileSize int64
}

// NewImageUploadHandler creates a new upload handler. maxFileSize is in bytes.
func NewImageUploadHandler(images service.ProductImageService, maxFileSize int64) *ImageUploadHandler {
	return &ImageUploadHandler{
		images:      images,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload handles HTTP PUT requests carrying the raw image bytes
func (h *ImageUploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Validate content type
	contentType := r.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/gif" {
		writeMessage(w, r, http.StatusUnsupportedMediaType, "Invalid content type")
		return
	}

	product, err := h.images.UploadImage(r.Context(), id, http.MaxBytesReader(w, r.Body, h.maxFileSize))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// HandleDownload streams the stored product image
func (h *ImageUploadHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	file, err := h.images.OpenImage(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	io.Copy(w, file)
}
