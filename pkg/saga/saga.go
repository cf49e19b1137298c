// Package saga 多步骤远程操作的补偿执行
//
// 结算需要依次调用多个远程接口（创建订单、清空远程购物车、更新本地状态），
// 任何一步失败时按逆序执行已完成步骤的补偿操作（如取消刚创建的订单）
package saga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/librant-storefront/pkg/metrics"
)

// Step Saga中的一个步骤
// Action和Compensate都可以为nil；补偿操作只依赖自己Action的结果
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga 一次Saga执行
type Saga struct {
	name     string
	steps    []Step
	executed []Step
	timeout  time.Duration
	logger   *zap.Logger
}

// Option Saga选项
type Option func(*Saga)

// WithLogger 指定日志器
func WithLogger(l *zap.Logger) Option {
	return func(s *Saga) { s.logger = l }
}

// WithName 指定名称（出现在日志里）
func WithName(name string) Option {
	return func(s *Saga) { s.name = name }
}

// NewSaga 创建Saga，timeout<=0表示不设整体超时
//
// 示例：
//
//	s := saga.NewSaga(30*time.Second, saga.WithName("checkout"))
//	s.AddStep("create-order", createOrder, cancelOrder)
//	s.AddStep("clear-remote-cart", clearRemoteCart, nil)
//	err := s.Execute(ctx)
func NewSaga(timeout time.Duration, opts ...Option) *Saga {
	s := &Saga{
		name:    "saga",
		timeout: timeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddStep 追加步骤（按添加顺序执行，按逆序补偿）
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// StepError 某一步执行失败
type StepError struct {
	Index int
	Step  string
	Err   error
	// CompensationErr 补偿过程中出现的错误（合并）
	CompensationErr error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("saga步骤[%d:%s]执行失败: %v", e.Index, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Execute 执行所有步骤
// 失败时补偿使用独立的context，不受原请求取消或超时影响
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i, step := range s.steps {
		if err := ctx.Err(); err != nil {
			return s.fail(i, step.Name, fmt.Errorf("saga超时或已取消: %w", err))
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				return s.fail(i, step.Name, err)
			}
		}
		s.executed = append(s.executed, step)
	}

	s.logger.Debug("saga completed", zap.String("saga", s.name), zap.Int("steps", len(s.steps)))
	return nil
}

func (s *Saga) fail(index int, name string, err error) error {
	s.logger.Warn("saga step failed, compensating",
		zap.String("saga", s.name),
		zap.String("step", name),
		zap.Int("executed", len(s.executed)),
		zap.Error(err),
	)
	return &StepError{
		Index:           index,
		Step:            name,
		Err:             err,
		CompensationErr: s.compensate(context.Background()),
	}
}

// compensate 逆序执行补偿，单个补偿失败不影响其他补偿
func (s *Saga) compensate(ctx context.Context) error {
	var errs []error
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}
		metrics.IncCounter(metrics.SagaCompensationsTotal)
		if err := step.Compensate(ctx); err != nil {
			s.logger.Error("saga compensation failed",
				zap.String("saga", s.name),
				zap.String("step", step.Name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("补偿[%s]: %w", step.Name, err))
		}
	}
	s.executed = nil
	return errors.Join(errs...)
}
