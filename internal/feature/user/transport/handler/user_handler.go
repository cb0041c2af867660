// Package handler provides the HTTP handlers of the user feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"admin_backend/internal/feature/user/domain/entity"
	"admin_backend/internal/feature/user/transport/http/dto"
	"admin_backend/internal/feature/user/usecase"
	"admin_backend/internal/platform/http/request"
	"admin_backend/internal/platform/http/response"
	"admin_backend/internal/platform/store"
	"admin_backend/internal/shared/messages"
)

// UserUsecase defines the user operations used by the handler.
type UserUsecase interface {
	GetAllUsers(ctx context.Context, req store.PageRequest) (store.Page[entity.User], error)
	GetInfoUser(ctx context.Context, id uint) (*entity.User, error)
	CreateUser(ctx context.Context, attrs usecase.UserAttributes) (*entity.User, error)
	UpdateUser(ctx context.Context, attrs usecase.UserAttributes, id uint) (*entity.User, error)
	DeleteUser(ctx context.Context, id uint) (bool, error)
}

// UserHandler handles the user CRUD endpoints.
type UserHandler struct {
	users  UserUsecase
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserUsecase, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	var q request.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	page, err := h.users.GetAllUsers(c.Request.Context(), q.PageRequest())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Paginated(c, messages.UserGetAllSuccess, page, dto.FromEntity)
}

// Show handles GET /users/:id.
func (h *UserHandler) Show(c *gin.Context) {
	id, ok := request.ParseID(c)
	if !ok {
		response.Message(c, http.StatusNotFound, messages.UserNotFound)
		return
	}
	u, err := h.users.GetInfoUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Data(c, http.StatusOK, messages.UserGetInfoSuccess, dto.FromEntity(*u))
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	u, err := h.users.CreateUser(c.Request.Context(), req.Attributes())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	h.logger.Info("user created", zap.Uint("user_id", u.ID))
	response.SuccessCreated(c, messages.UserCreateSuccess)
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := request.ParseID(c)
	if !ok {
		response.Message(c, http.StatusNotFound, messages.UserNotFound)
		return
	}
	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	if _, err := h.users.UpdateUser(c.Request.Context(), req.Attributes(), id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	response.Success(c, messages.UserUpdateSuccess)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := request.ParseID(c)
	if !ok {
		response.Message(c, http.StatusNotFound, messages.UserNotFound)
		return
	}
	if _, err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, h.logger, err)
		return
	}
	h.logger.Info("user deleted", zap.Uint("user_id", id))
	response.Success(c, messages.UserDeleteSuccess)
}
