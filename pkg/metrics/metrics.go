// Package metrics 店面服务的Prometheus指标
//
// 指标分三类：
// - HTTP：本服务对外接口的请求量、耗时
// - 上游：对远程图书API的调用量、耗时、熔断器状态
// - 业务：购物车变更、筛选变更、结算、登录、丢弃的过期响应
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾；
// 标签只用有限取值（路由模板、动作名），不用用户ID、图书ID
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

var (
	once sync.Once

	// HTTPRequestsTotal 对外接口请求总数，标签：method、path（路由模板）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration 对外接口耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的请求数
	HTTPRequestsInProgress prometheus.Gauge

	// UpstreamRequestsTotal 上游调用总数，标签：endpoint、outcome（ok/error/rejected）
	UpstreamRequestsTotal *prometheus.CounterVec

	// UpstreamRequestDuration 上游调用耗时
	UpstreamRequestDuration *prometheus.HistogramVec

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// CartMutationsTotal 购物车变更次数，标签：action
	CartMutationsTotal *prometheus.CounterVec

	// FilterChangesTotal 筛选参数变更次数，标签：kind（toggle/search/sort/reset）
	FilterChangesTotal *prometheus.CounterVec

	// CheckoutsTotal 结算次数，标签：result（success/failure）
	CheckoutsTotal *prometheus.CounterVec

	// CheckoutDuration 结算耗时
	CheckoutDuration prometheus.Histogram

	// SagaCompensationsTotal 结算失败后执行的补偿次数
	SagaCompensationsTotal prometheus.Counter

	// LoginsTotal 登录次数，标签：result（success/rejected/invalid_token）
	LoginsTotal *prometheus.CounterVec

	// StaleResponsesTotal 因代号过期被丢弃的响应数，标签：kind（cart_sync）
	StaleResponsesTotal *prometheus.CounterVec

	// EventsPublishedTotal 发布的领域事件数，标签：routing_key、result
	EventsPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标（重复调用安全）
func InitMetrics() {
	once.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP请求总数",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP请求耗时（秒）",
		Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"method", "path"})

	HTTPRequestsInProgress = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_progress",
		Help:      "正在处理的HTTP请求数",
	})

	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "远程API调用总数",
	}, []string{"endpoint", "outcome"})

	// 远程API部署在Serverless平台，冷启动可能到秒级
	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "远程API调用耗时（秒）",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"endpoint"})

	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_state",
		Help:      "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
	}, []string{"name"})

	CartMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "购物车变更次数",
	}, []string{"action"})

	FilterChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "filter_changes_total",
		Help:      "筛选参数变更次数",
	}, []string{"kind"})

	CheckoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "结算次数",
	}, []string{"result"})

	CheckoutDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_duration_seconds",
		Help:      "结算耗时（秒）",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
	})

	SagaCompensationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "saga_compensations_total",
		Help:      "结算补偿执行次数",
	})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "登录次数",
	}, []string{"result"})

	StaleResponsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_responses_total",
		Help:      "因代号过期被丢弃的响应数",
	}, []string{"kind"})

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "领域事件发布次数",
	}, []string{"routing_key", "result"})
}

// =========================================
// 辅助函数（指标未初始化时全部为空操作）
// =========================================

// IncCounter 递增Counter
func IncCounter(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

// IncCounterVec 递增带标签的Counter
func IncCounterVec(c *prometheus.CounterVec, labels ...string) {
	if c != nil {
		c.WithLabelValues(labels...).Inc()
	}
}

// ObserveSince 记录从start到现在的耗时
func ObserveSince(h prometheus.Observer, start time.Time) {
	if h != nil {
		h.Observe(time.Since(start).Seconds())
	}
}

// ObserveHistogramVecSince 记录带标签的耗时
func ObserveHistogramVecSince(h *prometheus.HistogramVec, start time.Time, labels ...string) {
	if h != nil {
		h.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	}
}

// SetCircuitBreakerState 更新熔断器状态
func SetCircuitBreakerState(name string, state int) {
	if CircuitBreakerState != nil {
		CircuitBreakerState.WithLabelValues(name).Set(float64(state))
	}
}

// IncGauge 递增Gauge
func IncGauge(g prometheus.Gauge) {
	if g != nil {
		g.Inc()
	}
}

// DecGauge 递减Gauge
func DecGauge(g prometheus.Gauge) {
	if g != nil {
		g.Dec()
	}
}
