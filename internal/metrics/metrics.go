package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// 时间线同步的类别与结果标签
const (
	KindBattle     = "battle"
	KindBirth      = "birth"
	KindHistorical = "historical"

	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
	OutcomeDeleted = "deleted"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// Metrics 进程内的 Prometheus 指标集合。nil 接收者上的方法均为空操作，便于测试时不注入。
type Metrics struct {
	registry     *prometheus.Registry
	timelineSync *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New 在给定 registry 上注册全部指标
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		timelineSync: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timeline_sync_total",
			Help: "Timeline synchronisation operations by kind and outcome.",
		}, []string{"kind", "outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	registry.MustRegister(m.timelineSync, m.httpRequests, m.httpDuration)
	return m
}

// ObserveTimelineSync 记录一次时间线同步结果
func (m *Metrics) ObserveTimelineSync(kind, outcome string) {
	if m == nil {
		return
	}
	m.timelineSync.WithLabelValues(kind, outcome).Inc()
}

// TimelineSyncCount 读取计数器当前值（测试与诊断用）
func (m *Metrics) TimelineSyncCount(kind, outcome string) float64 {
	if m == nil {
		return 0
	}
	c, err := m.timelineSync.GetMetricWithLabelValues(kind, outcome)
	if err != nil {
		return 0
	}
	var pb dto.Metric
	if err := c.Write(&pb); err != nil {
		return 0
	}
	return pb.GetCounter().GetValue()
}

// GinMiddleware 统计每个路由的请求数与耗时
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Handler 暴露 /metrics
func (m *Metrics) Handler() gin.HandlerFunc {
	if m == nil {
		return gin.WrapH(promhttp.Handler())
	}
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
