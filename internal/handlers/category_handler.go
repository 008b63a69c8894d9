package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quillpress/backend/internal/models"
	"go.uber.org/zap"
)

// CategoryService is the interface that wraps methods for Categories business logic.
type CategoryService interface {
	// Method GetAll retrieves all categories ordered by creation time.
	GetAll(ctx context.Context) ([]models.Category, error)
	// Method Create validates and stores a new category.
	//
	// An empty name is a validation error, a taken name is a conflict error.
	Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
}

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	BaseHandler
	service CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(svc CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all category handler routes
func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
	})
}

// GetAll handles GET /categories
// @Summary List categories
// @Description Get all categories ordered by creation time
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {object} map[string]string
// @Router /categories [get]
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAll(r.Context())
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to get categories")
		return
	}

	h.RespondJSON(w, http.StatusOK, categories)
}

// Create handles POST /categories
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	category, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "failed to create category")
		return
	}

	h.RespondJSON(w, http.StatusCreated, category)
}
