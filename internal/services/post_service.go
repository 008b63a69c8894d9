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

// PostRepository is the interface that wraps methods for Posts table data access
type PostRepository interface {
	// Method GetList retrieves one page of posts matching the filter together with the total count of matches.
	//
	// Posts are ordered newest first and have category, author and comments resolved.
	// filter.Page and filter.Limit must be positive.
	GetList(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error)
	// Method GetByID retrieves a resolved post.
	//
	// If the post does not exist, a not found error will be returned together with "nil" value.
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// Method Create inserts a new post with an empty comment list.
	//
	// If the referenced category does not exist, a not found error is returned.
	Create(ctx context.Context, post *models.Post) error
	// Method Update writes the non-nil fields of "update".
	//
	// If the post does not exist, a not found error is returned.
	Update(ctx context.Context, id string, update *models.PostUpdate) error
	// Method Delete removes a post and its comments.
	//
	// If the post does not exist, a not found error is returned.
	Delete(ctx context.Context, id string) error
}

// CategoryLookup checks category references of posts
type CategoryLookup interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

const (
	defaultPage  = 1
	defaultLimit = 10

	// Column sizes of posts.title and posts.featured_image
	maxTitleLength         = 255
	maxFeaturedImageLength = 512
)

type postService struct {
	repo         PostRepository
	categoryRepo CategoryLookup
	logger       *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(repo PostRepository, categoryRepo CategoryLookup, logger *zap.Logger) *postService {
	return &postService{
		repo:         repo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// List retrieves a page of posts.
//
// Page and limit below 1 fall back to 1 and 10. Search is matched against title and content.
func (s *postService) List(ctx context.Context, filter models.PostFilter) (*models.PostListResponse, error) {
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}
	filter.Search = strings.TrimSpace(filter.Search)
	filter.CategoryID = strings.TrimSpace(filter.CategoryID)

	posts, total, err := s.repo.GetList(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list posts", zap.Error(err))
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return &models.PostListResponse{
		Posts: posts,
		Total: total,
		Page:  filter.Page,
		Pages: models.PageCount(total, filter.Limit),
		Limit: filter.Limit,
	}, nil
}

// GetByID retrieves a single post
func (s *postService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if !isValidID(id) {
		return nil, models.NewValidationError("invalid post id")
	}
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a new post written by authorID
func (s *postService) Create(ctx context.Context, authorID string, req *models.CreatePostRequest) (*models.Post, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, models.NewValidationError("title and content are required")
	}
	featuredImage := strings.TrimSpace(req.FeaturedImage)
	if err := checkLengths(title, featuredImage); err != nil {
		return nil, err
	}

	categoryID := strings.TrimSpace(req.Category)
	if err := s.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &models.Post{
		ID:            uuid.NewString(),
		Title:         title,
		Content:       content,
		Slug:          Slugify(title),
		CategoryID:    categoryID,
		AuthorID:      authorID,
		FeaturedImage: featuredImage,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created", zap.String("postId", post.ID), zap.String("authorId", authorID))
	return s.repo.GetByID(ctx, post.ID)
}

// Update applies the provided fields to a post.
//
// A request without fields returns the post unchanged.
// Any authenticated user may update any post.
func (s *postService) Update(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error) {
	if !isValidID(id) {
		return nil, models.NewValidationError("invalid post id")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Nothing to change, updatedAt is left alone
	if req.IsEmpty() {
		return current, nil
	}

	update := &models.PostUpdate{UpdatedAt: time.Now().UTC()}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, models.NewValidationError("title cannot be empty")
		}
		if err := checkLengths(title, ""); err != nil {
			return nil, err
		}
		slug := Slugify(title)
		update.Title = &title
		update.Slug = &slug
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, models.NewValidationError("content cannot be empty")
		}
		update.Content = &content
	}
	if req.Category != nil {
		categoryID := strings.TrimSpace(*req.Category)
		if err := s.checkCategory(ctx, categoryID); err != nil {
			return nil, err
		}
		update.CategoryID = &categoryID
	}
	if req.FeaturedImage != nil {
		featuredImage := strings.TrimSpace(*req.FeaturedImage)
		if err := checkLengths("", featuredImage); err != nil {
			return nil, err
		}
		update.FeaturedImage = &featuredImage
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes a post with all of its comments.
//
// Any authenticated user may delete any post.
func (s *postService) Delete(ctx context.Context, id string) error {
	if !isValidID(id) {
		return models.NewValidationError("invalid post id")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("post deleted", zap.String("postId", id))
	return nil
}

func (s *postService) checkCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return models.NewValidationError("category is required")
	}
	if !isValidID(categoryID) {
		return models.NewValidationError("invalid category id")
	}
	exists, err := s.categoryRepo.ExistsByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return models.NewNotFoundError("category not found")
	}
	return nil
}

// checkLengths rejects values that do not fit their columns.
// The slug is derived from the title and is never longer.
func checkLengths(title, featuredImage string) error {
	if utf8.RuneCountInString(title) > maxTitleLength {
		return models.NewValidationError(fmt.Sprintf("title must be at most %d characters long", maxTitleLength))
	}
	if utf8.RuneCountInString(featuredImage) > maxFeaturedImageLength {
		return models.NewValidationError(fmt.Sprintf("featured image must be at most %d characters long", maxFeaturedImageLength))
	}
	return nil
}

// isValidID reports whether id is a well-formed identifier
func isValidID(id string) bool {
	return uuid.Validate(id) == nil
}
