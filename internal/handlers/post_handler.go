package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/quillpress/backend/internal/middleware"
	"github.com/quillpress/backend/internal/models"
	"go.uber.org/zap"
)

// PostService is the interface that wraps methods for Posts business logic.
type PostService interface {
	// Method List retrieves one page of posts.
	//
	// Non-positive page and limit fall back to their defaults.
	List(ctx context.Context, filter models.PostFilter) (*models.PostListResponse, error)
	// Method GetByID retrieves a post with category, author and comments.
	//
	// A malformed id is a validation error, an unknown one a not found error.
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// Method Create stores a new post written by "authorID".
	Create(ctx context.Context, authorID string, req *models.CreatePostRequest) (*models.Post, error)
	// Method Update applies the non-nil fields of "req" and returns the updated post.
	Update(ctx context.Context, id string, req *models.UpdatePostRequest) (*models.Post, error)
	// Method Delete removes a post together with its comments.
	Delete(ctx context.Context, id string) error
}

// PostHandler handles HTTP requests for posts
type PostHandler struct {
	BaseHandler
	service PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(svc PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all post handler routes.
// Reads are public, writes go through authMiddleware.
func (h *PostHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/posts", h.List)
	r.Get("/posts/{id}", h.GetByID)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/posts", h.Create)
		r.Put("/posts/{id}", h.Update)
		r.Delete("/posts/{id}", h.Delete)
	})
}

// List handles GET /posts
// @Summary List posts
// @Description Get a page of posts, newest first, optionally filtered by a search term and a category
// @Tags posts
// @Produce json
// @Param page query int false "Page number, default: 1"
// @Param limit query int false "Page size, default: 10"
// @Param search query string false "Case-insensitive match on title or content"
// @Param category query string false "Category ID"
// @Success 200 {object} models.PostListResponse
// @Failure 500 {object} map[string]string
// @Router /posts [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Malformed numbers fall through as 0 and get the defaults
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	result, err := h.service.List(r.Context(), models.PostFilter{
		Page:       page,
		Limit:      limit,
		Search:     query.Get("search"),
		CategoryID: query.Get("category"),
	})
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to list posts")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// GetByID handles GET /posts/{id}
// @Summary Get post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /posts/{id} [get]
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to get post")
		return
	}

	h.RespondJSON(w, http.StatusOK, post)
}

// Create handles POST /posts
// @Summary Create post
// @Description Create a post authored by the caller. The slug is derived from the title.
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreatePostRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 500 {object} map[string]string
// @Router /posts [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreatePostRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to create post")
		return
	}

	h.RespondJSON(w, http.StatusCreated, post)
}

// Update handles PUT /posts/{id}
// @Summary Update post
// @Description Update the provided fields of a post. A new title re-derives the slug.
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post ID"
// @Param request body models.UpdatePostRequest true "Fields to change"
// @Success 200 {object} models.Post
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /posts/{id} [put]
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePostRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to update post")
		return
	}

	h.RespondJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /posts/{id}
// @Summary Delete post
// @Description Delete a post and all of its comments
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.RespondServiceError(w, r, err, "failed to delete post")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "post deleted successfully"})
}
