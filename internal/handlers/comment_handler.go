package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quillpress/backend/internal/middleware"
	"github.com/quillpress/backend/internal/models"
	"go.uber.org/zap"
)

// CommentService is the interface that wraps methods for post comments business logic.
type CommentService interface {
	// Method Add appends a comment written by "authorID" to a post.
	Add(ctx context.Context, postID, authorID string, req *models.CreateCommentRequest) (*models.Comment, error)
	// Method List retrieves the comments of a post in insertion order with authors resolved.
	List(ctx context.Context, postID string) ([]models.CommentResponse, error)
	// Method Delete removes a comment. Only its author may do that, others get a forbidden error.
	Delete(ctx context.Context, postID, commentID, callerID string) error
}

// CommentHandler handles HTTP requests for post comments
type CommentHandler struct {
	BaseHandler
	service CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(svc CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all comment handler routes
func (h *CommentHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/posts/{id}/comments", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/posts/{id}/comments", h.Add)
		r.Delete("/posts/{id}/comments/{commentId}", h.Delete)
	})
}

// List handles GET /posts/{id}/comments
// @Summary List comments
// @Description Get the comments of a post in insertion order. Author is null when the user no longer exists.
// @Tags comments
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string][]models.CommentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /posts/{id}/comments [get]
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to list comments")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// Add handles POST /posts/{id}/comments
// @Summary Add comment
// @Tags comments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post ID"
// @Param request body models.CreateCommentRequest true "Comment"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /posts/{id}/comments [post]
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateCommentRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.Add(r.Context(), chi.URLParam(r, "id"), userID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to add comment")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"comment": comment,
	})
}

// Delete handles DELETE /posts/{id}/comments/{commentId}
// @Summary Delete comment
// @Description Delete a comment. Only the comment author may delete it.
// @Tags comments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /posts/{id}/comments/{commentId} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "commentId"), userID)
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to delete comment")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "comment deleted successfully",
	})
}
