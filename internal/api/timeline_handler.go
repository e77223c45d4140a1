package api

import (
	"net/http"

	"SamuraiArchive/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TimelineHandler 时间线查询与重建
type TimelineHandler struct {
	timeline  *service.TimelineService
	generator *service.TimelineGenerator
	logger    *logrus.Logger
}

// NewTimelineHandler 创建 TimelineHandler
func NewTimelineHandler(timeline *service.TimelineService, generator *service.TimelineGenerator, logger *logrus.Logger) *TimelineHandler {
	return &TimelineHandler{timeline: timeline, generator: generator, logger: logger}
}

// List GET /api/timeline，按日期升序
func (h *TimelineHandler) List(c *gin.Context) {
	list, err := h.timeline.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list timeline", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get GET /api/timeline/:id
func (h *TimelineHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v, err := h.timeline.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get timeline", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Generate POST /api/timeline/generate 全量重建战役与出生条目
func (h *TimelineHandler) Generate(c *gin.Context) {
	stats, err := h.generator.GenerateTimeline(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "generate timeline", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Historical POST /api/timeline/historical 导入静态历史事件
func (h *TimelineHandler) Historical(c *gin.Context) {
	stats, err := h.generator.SyncHistoricalEvents(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "sync historical events", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
