package api

import (
	"net/http"

	"SamuraiArchive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler 登录、注册与个人资料
type AuthHandler struct {
	auth   *service.AuthService
	users  *service.UserService
	logger *logrus.Logger
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(auth *service.AuthService, users *service.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, logger: logger}
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.auth.Register(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, "register", err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in service.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.auth.Login(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, "login", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Profile GET /api/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, h.auth.Profile(currentUser(c)))
}

// UpdateProfile PUT /api/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var in service.UserUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	v, err := h.users.UpdateProfile(c.Request.Context(), currentUser(c), &in)
	if err != nil {
		respondError(c, h.logger, "update profile", err)
		return
	}
	c.JSON(http.StatusOK, v)
}
