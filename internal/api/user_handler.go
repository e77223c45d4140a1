package api

import (
	"net/http"

	"SamuraiArchive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler 用户管理；权限判断在 UserService 中
type UserHandler struct {
	users  *service.UserService
	logger *logrus.Logger
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(users *service.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// List GET /api/users（仅管理员）
func (h *UserHandler) List(c *gin.Context) {
	list, err := h.users.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.logger, "list users", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v, err := h.users.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, h.logger, "get user", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Update PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in service.UserUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	v, err := h.users.Update(c.Request.Context(), currentUser(c), id, &in)
	if err != nil {
		respondError(c, h.logger, "update user", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Delete DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, h.logger, "delete user", err)
		return
	}
	c.Status(http.StatusNoContent)
}
