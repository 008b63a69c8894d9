package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/quillpress/backend/internal/storage"
	"go.uber.org/zap"
)

// Storage defines the interface for file storage operations
type Storage interface {
	// Create creates a new file and returns a WriteCloser. Existing files are never overwritten.
	Create(name string) (io.WriteCloser, error)
	// Delete removes a file
	Delete(name string) error
}

// UploadURLPrefix is the public path stored files are served under
const UploadURLPrefix = "/uploads/"

type uploadService struct {
	storage Storage
	logger  *zap.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(storage Storage, logger *zap.Logger) *uploadService {
	return &uploadService{
		storage: storage,
		logger:  logger,
	}
}

// UploadImage stores the uploaded bytes under a fresh name that keeps the original extension
// and returns the public path of the stored file
func (s *uploadService) UploadImage(ctx context.Context, reader io.Reader, originalName string) (string, error) {
	extension := filepath.Ext(originalName)
	filename := storage.GenerateFileName(extension)

	writeCloser, err := s.storage.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(writeCloser, reader); err != nil {
		writeCloser.Close()
		s.storage.Delete(filename)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	if err := writeCloser.Close(); err != nil {
		s.storage.Delete(filename)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	s.logger.Info("file uploaded", zap.String("file", filename))
	return UploadURLPrefix + filename, nil
}
