// Package handler provides the HTTP handlers of the category feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"admin_backend/internal/feature/category/domain/entity"
	"admin_backend/internal/feature/category/transport/http/dto"
	"admin_backend/internal/feature/category/usecase"
	"admin_backend/internal/platform/http/request"
	"admin_backend/internal/platform/http/response"
	"admin_backend/internal/platform/store"
	"admin_backend/internal/shared/messages"
)

// CategoryUsecase defines the category operations used by the handler.
type CategoryUsecase interface {
	GetAllCategory(ctx context.Context, req store.PageRequest) (store.Page[entity.Category], error)
	GetCategory(ctx context.Context, id uint) (*entity.Category, error)
	GetParent(ctx context.Context) ([]entity.Category, error)
	Create(ctx context.Context, attrs usecase.CategoryAttributes) (*entity.Category, error)
	Update(ctx context.Context, attrs usecase.CategoryAttributes, id uint) (*entity.Category, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// CategoryHandler handles the category endpoints.
type CategoryHandler struct {
	categories CategoryUsecase
	logger     *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories CategoryUsecase, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

// List handles GET /categories.
func (h *CategoryHandler) List(c *gin.Context) {
	var q request.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	page, err := h.categories.GetAllCategory(c.Request.Context(), q.PageRequest())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Paginated(c, messages.CategoryGetAllSuccess, page, dto.FromEntity)
}

// Parents handles GET /categories/parents.
func (h *CategoryHandler) Parents(c *gin.Context) {
	roots, err := h.categories.GetParent(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	out := make([]dto.CategoryRes, 0, len(roots))
	for _, r := range roots {
		out = append(out, dto.FromEntity(r))
	}
	response.Data(c, http.StatusOK, messages.CategoryGetParentSuccess, out)
}

// Show handles GET /categories/:id.
func (h *CategoryHandler) Show(c *gin.Context) {
	id, ok := request.ParseID(c)
	if !ok {
		response.Message(c, http.StatusNotFound, messages.CategoryNotFound)
		return
	}
	cat, err := h.categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Data(c, http.StatusOK, messages.CategoryGetInfoSuccess, dto.FromEntity(*cat))
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	cat, err := h.categories.Create(c.Request.Context(), req.Attributes())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Data(c, http.StatusCreated, messages.CategoryCreateSuccess, dto.FromEntity(*cat))
}

// Update handles PUT /categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := request.ParseID(c)
	if !ok {
		response.Message(c, http.StatusNotFound, messages.CategoryNotFound)
		return
	}
	var req dto.CategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	cat, err := h.categories.Update(c.Request.Context(), req.Attributes(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Data(c, http.StatusOK, messages.CategoryUpdateSuccess, dto.FromEntity(*cat))
}

// Delete handles DELETE /categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := request.ParseID(c)
	if !ok {
		response.Message(c, http.StatusNotFound, messages.CategoryNotFound)
		return
	}
	if _, err := h.categories.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, messages.CategoryDeleteSuccess)
}
