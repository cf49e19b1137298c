// Package librant 远程图书API（Librant）客户端
//
// 设计说明：
// 1. 所有业务数据（图书、购物车、订单、支付）都在远程API，本服务只做转发和整理
// 2. 统一处理响应信封{success, message, data}和错误码映射
// 3. 上游5xx和网络错误计入熔断器，4xx是业务结果，不计入
// 4. 登录令牌从context读取，写入authorization头
package librant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xiebiao/librant-storefront/internal/domain/user"
	"github.com/xiebiao/librant-storefront/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
	"github.com/xiebiao/librant-storefront/pkg/metrics"
	"github.com/xiebiao/librant-storefront/pkg/tracing"
)

const maxResponseBytes = 4 << 20

// Options 客户端配置
type Options struct {
	BaseURL    string
	AuthScheme string // 为空时authorization头直接放token
	Timeout    time.Duration
	Breaker    circuitbreaker.Config
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client 远程API客户端
type Client struct {
	baseURL    string
	authScheme string
	timeout    time.Duration
	http       *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	logger     *zap.Logger
}

// NewClient 创建客户端
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	breakerCfg := opts.Breaker
	if breakerCfg.IsSuccessful == nil {
		breakerCfg.IsSuccessful = countsAsSuccess
	}
	breaker := circuitbreaker.NewCircuitBreaker("librant-api", breakerCfg)
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		logger.Warn("circuit breaker state changed",
			zap.String("breaker", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
		metrics.SetCircuitBreakerState(name, int(to))
	})

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		authScheme: opts.AuthScheme,
		timeout:    opts.Timeout,
		http:       httpClient,
		breaker:    breaker,
		logger:     logger,
	}
}

// Breaker 返回上游熔断器（健康检查用）
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// countsAsSuccess 只有上游不可用才算失败，业务拒绝（4xx）不触发熔断
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	return !apperrors.HasCode(err, apperrors.ErrCodeUpstream) &&
		!apperrors.HasCode(err, apperrors.ErrCodeUpstreamTimeout)
}

// envelope 上游统一响应格式
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// call 一次上游调用
type call struct {
	method   string
	path     string
	query    url.Values
	body     interface{}
	endpoint string // 指标和Span名称，使用路由模板而不是实际路径
}

// do 执行调用，成功时把data解码到out（out为nil时忽略data）
//
// 错误映射：
// - 熔断器打开 → ErrCircuitOpen
// - 网络错误、5xx、响应格式错误 → ErrUpstream
// - 超时 → ErrUpstreamTimeout
// - 401 → ErrUnauthorized，403 → ErrForbidden，404 → ErrNotFound
// - 其他4xx或success=false → ErrBusiness（带上游message）
func (c *Client) do(ctx context.Context, cl call, out interface{}) error {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "librant "+cl.method+" "+cl.endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", cl.method),
			attribute.String("librant.endpoint", cl.endpoint),
		),
	)
	defer span.End()

	err := c.breaker.ExecuteContext(ctx, func(ctx context.Context) error {
		return c.send(ctx, cl, out)
	})

	outcome := "ok"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		outcome = "rejected"
		err = apperrors.ErrCircuitOpen.WithCause(err)
	case err != nil && !countsAsSuccess(err):
		outcome = "error"
	}

	metrics.IncCounterVec(metrics.UpstreamRequestsTotal, cl.endpoint, outcome)
	metrics.ObserveHistogramVecSince(metrics.UpstreamRequestDuration, start, cl.endpoint)

	if err != nil {
		tracing.RecordError(span, err)
		c.logger.Debug("upstream call failed",
			zap.String("method", cl.method),
			zap.String("endpoint", cl.endpoint),
			zap.String("outcome", outcome),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
	}
	return err
}

func (c *Client) send(ctx context.Context, cl call, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, cl)
	if err != nil {
		return apperrors.Wrap(err, "构造上游请求失败")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.ErrUpstreamTimeout.WithCause(err)
		}
		return apperrors.ErrUpstream.WithCause(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperrors.ErrUpstream.WithCause(fmt.Errorf("读取响应失败: %w", err))
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return apperrors.ErrUpstream.WithCause(fmt.Errorf("%s %s: status %d", cl.method, cl.endpoint, resp.StatusCode))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return apperrors.ErrUpstream.WithCause(fmt.Errorf("%s %s: 响应格式错误: %w", cl.method, cl.endpoint, err))
	}

	if err := statusError(resp.StatusCode, &env); err != nil {
		return err
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperrors.ErrUpstream.WithCause(fmt.Errorf("%s %s: 解析data失败: %w", cl.method, cl.endpoint, err))
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, cl call) (*http.Request, error) {
	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := user.TokenFromContext(ctx); token != "" {
		req.Header.Set("authorization", c.authorization(token))
	}
	tracing.InjectHTTP(ctx, req.Header)
	return req, nil
}

func (c *Client) authorization(token string) string {
	if c.authScheme == "" {
		return token
	}
	return c.authScheme + " " + token
}

// rejection 上游的业务拒绝（作为AppError的内部原因）
type rejection struct {
	Status  int
	Message string
}

func (r *rejection) Error() string {
	return fmt.Sprintf("upstream rejected (status %d): %s", r.Status, r.Message)
}

// statusError 按HTTP状态码和信封生成错误，成功时返回nil
func statusError(status int, env *envelope) error {
	pick := func(base *apperrors.AppError) *apperrors.AppError {
		cause := &rejection{Status: status, Message: env.Message}
		if env.Message == "" {
			return base.WithCause(cause)
		}
		return base.WithMessage(env.Message).WithCause(cause)
	}

	switch {
	case status == http.StatusUnauthorized:
		return pick(apperrors.ErrUnauthorized)
	case status == http.StatusForbidden:
		return pick(apperrors.ErrForbidden)
	case status == http.StatusNotFound:
		return pick(apperrors.ErrNotFound)
	case status >= http.StatusBadRequest:
		return pick(apperrors.ErrBusiness)
	case !env.Success:
		return pick(apperrors.ErrBusiness)
	}
	return nil
}

// isNotFound 上游返回404
func isNotFound(err error) bool {
	return apperrors.HasCode(err, apperrors.ErrCodeNotFound)
}

// decodeList 列表data兼容两种形状：直接数组，或{data: 数组}
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var list []T
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var nested struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &nested); err != nil {
		return nil, err
	}
	if nested.Data == nil {
		return []T{}, nil
	}
	return nested.Data, nil
}

// upstreamDecodeError 列表解析失败
func upstreamDecodeError(endpoint string, err error) error {
	return apperrors.ErrUpstream.WithCause(fmt.Errorf("%s: 解析列表失败: %w", endpoint, err))
}
