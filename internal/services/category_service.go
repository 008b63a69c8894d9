package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/quillpress/backend/internal/models"
	"go.uber.org/zap"
)

// CategoryRepository is the interface that wraps methods for Categories table data access
type CategoryRepository interface {
	// Method GetAll retrieves all categories ordered by creation time.
	GetAll(ctx context.Context) ([]models.Category, error)
	// Method Create inserts a new category.
	//
	// If a category with the same name exists, a conflict error is returned.
	Create(ctx context.Context, category *models.Category) error
	// Method ExistsByName checks if a category with such name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// maxCategoryNameLength matches the categories.name column
const maxCategoryNameLength = 100

type categoryService struct {
	repo   CategoryRepository
	logger *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(repo CategoryRepository, logger *zap.Logger) *categoryService {
	return &categoryService{
		repo:   repo,
		logger: logger,
	}
}

// GetAll retrieves all categories
func (s *categoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get categories", zap.Error(err))
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// Create validates and stores a new category
func (s *categoryService) Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.NewValidationError("category name is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLength {
		return nil, models.NewValidationError(fmt.Sprintf("category name must be at most %d characters long", maxCategoryNameLength))
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, models.NewConflictError("category already exists")
	}

	category := &models.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}
