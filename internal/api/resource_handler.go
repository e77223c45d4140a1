package api

import (
	"context"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// resourceService 实体 CRUD 服务的公共形态
type resourceService[In any, V any] interface {
	List(ctx context.Context) ([]V, error)
	Get(ctx context.Context, key string) (V, error)
	Create(ctx context.Context, in *In) (V, error)
	Update(ctx context.Context, id uint64, in *In) (V, error)
	Delete(ctx context.Context, id uint64) error
}

// ResourceHandler 通用实体接口：
// GET /xxx、GET /xxx/:id（数字或 slug）、POST /xxx、PUT|PATCH /xxx/:id、DELETE /xxx/:id
type ResourceHandler[In any, V any] struct {
	name   string
	svc    resourceService[In, V]
	logger *logrus.Logger
}

// NewResourceHandler 创建 ResourceHandler
func NewResourceHandler[In any, V any](name string, svc resourceService[In, V], logger *logrus.Logger) *ResourceHandler[In, V] {
	return &ResourceHandler[In, V]{name: name, svc: svc, logger: logger}
}

func (h *ResourceHandler[In, V]) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list "+h.name, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ResourceHandler[In, V]) Get(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get "+h.name, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *ResourceHandler[In, V]) Create(c *gin.Context) {
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	v, err := h.svc.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, "create "+h.name, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// Update PUT 与 PATCH 都是部分更新：请求体中缺失的字段保持不变
func (h *ResourceHandler[In, V]) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	v, err := h.svc.Update(c.Request.Context(), id, &in)
	if err != nil {
		respondError(c, h.logger, "update "+h.name, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *ResourceHandler[In, V]) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete "+h.name, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Register 挂载路由；read 作用于 GET，write 作用于写操作
func (h *ResourceHandler[In, V]) Register(g *gin.RouterGroup, path string, read []gin.HandlerFunc, write []gin.HandlerFunc) {
	g.GET(path, chain(read, h.List)...)
	g.GET(path+"/:id", chain(read, h.Get)...)
	g.POST(path, chain(write, h.Create)...)
	g.PUT(path+"/:id", chain(write, h.Update)...)
	g.PATCH(path+"/:id", chain(write, h.Update)...)
	g.DELETE(path+"/:id", chain(write, h.Delete)...)
}

func chain(middleware []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	return append(slices.Clone(middleware), handler)
}
