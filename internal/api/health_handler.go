package api

import (
	"context"
	"net/http"
	"time"

	"SamuraiArchive/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HealthHandler 存活与数据库连通性检查
type HealthHandler struct {
	store  *repository.Store
	logger *logrus.Logger
}

// NewHealthHandler 创建 HealthHandler
func NewHealthHandler(store *repository.Store, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

// Health GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		h.logger.WithError(err).Warn("数据库不可用")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
