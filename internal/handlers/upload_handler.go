package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UploadService is the interface that wraps methods for storing uploaded files.
type UploadService interface {
	// Method UploadImage stores the content of "reader" and returns the public path of the stored file.
	//
	// The extension of "originalName" is kept, the rest of the name is generated.
	UploadImage(ctx context.Context, reader io.Reader, originalName string) (string, error)
}

const maxUploadMemory = 10 << 20 // 10MB

// UploadHandler handles file uploads
type UploadHandler struct {
	BaseHandler
	service UploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(svc UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all upload handler routes
func (h *UploadHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Post("/posts/upload", h.UploadImage)
}

// UploadImage handles POST /posts/upload
// @Summary Upload image
// @Description Store an image for use as a featured image. Returns the public path of the file.
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param image formData file true "Image file"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /posts/upload [post]
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			h.Logger.Warn("failed to parse multipart form", zap.Error(err))
		}
		h.RespondError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	filePath, err := h.service.UploadImage(r.Context(), file, fileHeader.Filename)
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to upload image")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"filePath": filePath,
	})
}
