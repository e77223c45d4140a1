package api

import (
	"net/http"

	"SamuraiArchive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FavoriteHandler 当前用户的收藏
type FavoriteHandler struct {
	favorites *service.FavoriteService
	logger    *logrus.Logger
}

// NewFavoriteHandler 创建 FavoriteHandler
func NewFavoriteHandler(favorites *service.FavoriteService, logger *logrus.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

// List GET /api/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	list, err := h.favorites.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.logger, "list favorites", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Add POST /api/favorites
func (h *FavoriteHandler) Add(c *gin.Context) {
	var in service.FavoriteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	v, err := h.favorites.Add(c.Request.Context(), currentUser(c), &in)
	if err != nil {
		respondError(c, h.logger, "add favorite", err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// Delete DELETE /api/favorites/:id
func (h *FavoriteHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.favorites.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, h.logger, "delete favorite", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Toggle POST /api/favorites/toggle
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	var in service.FavoriteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	res, err := h.favorites.Toggle(c.Request.Context(), currentUser(c), &in)
	if err != nil {
		respondError(c, h.logger, "toggle favorite", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Check GET /api/favorites/check?entity_type=samourai&entity_id=1
func (h *FavoriteHandler) Check(c *gin.Context) {
	var in service.FavoriteInput
	if err := c.ShouldBindQuery(&in); err != nil {
		respondBindError(c, err)
		return
	}
	ok, err := h.favorites.Check(c.Request.Context(), currentUser(c), &in)
	if err != nil {
		respondError(c, h.logger, "check favorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": ok})
}
