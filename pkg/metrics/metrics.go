// Package metrics 定义 Prometheus 指标并提供 gin 中间件与暴露端点。
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 指标定义：
// - http_requests_total：按路由模板与方法统计请求次数（附带状态码标签）
// - http_request_duration_seconds：按路由模板与方法统计请求耗时分布
// - tokens_issued_total：按令牌类型统计签发数量
// - outbox_events_total：outbox 事件投递结果
// - orders_created_total：按订单类型统计下单数量
// - payment_notifications_total：微信支付回调处理结果
// - scheduled_jobs_total：定时任务执行结果
var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP 请求计数（按路径/方法/状态）"},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP 请求耗时（秒）", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
	TokensIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tokens_issued_total", Help: "签发令牌总数（按类型）"},
		[]string{"kind"},
	)
	OutboxEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "outbox_events_total", Help: "outbox 事件投递计数（按事件/结果）"},
		[]string{"event_type", "result"},
	)
	OrdersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orders_created_total", Help: "下单计数（按订单类型）"},
		[]string{"kind"},
	)
	PaymentNotifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "payment_notifications_total", Help: "支付回调计数（按结果）"},
		[]string{"result"},
	)
	ScheduledJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "scheduled_jobs_total", Help: "定时任务执行计数（按任务/结果）"},
		[]string{"job", "result"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, TokensIssued, OutboxEvents, OrdersCreated, PaymentNotifications, ScheduledJobs)
}

// Handler 返回记录基础 HTTP 指标的中间件（QPS/耗时）。
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Exposer 返回标准 Prometheus 暴露处理器。
func Exposer() gin.HandlerFunc { return gin.WrapH(promhttp.Handler()) }
