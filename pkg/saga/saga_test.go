package saga

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func recordStep(log *[]string, name string) func(context.Context) error {
	return func(context.Context) error {
		*log = append(*log, name)
		return nil
	}
}

func TestSaga_Execute_Success(t *testing.T) {
	var executed []string

	s := NewSaga(5*time.Second, WithName("checkout"), WithLogger(zaptest.NewLogger(t)))
	s.AddStep("create-order", recordStep(&executed, "create-order"), recordStep(&executed, "cancel-order"))
	s.AddStep("clear-remote-cart", recordStep(&executed, "clear-remote-cart"), nil)
	s.AddStep("mark-ordered", recordStep(&executed, "mark-ordered"), nil)

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"create-order", "clear-remote-cart", "mark-ordered"}, executed)
}

func TestSaga_Execute_FailureAndCompensate(t *testing.T) {
	var executed []string
	errClear := errors.New("DELETE /cart/clear: 503")

	s := NewSaga(5 * time.Second)
	s.AddStep("create-order", recordStep(&executed, "create-order"), recordStep(&executed, "cancel-order"))
	s.AddStep("reserve", recordStep(&executed, "reserve"), recordStep(&executed, "release"))
	s.AddStep("clear-remote-cart", func(context.Context) error { return errClear }, recordStep(&executed, "never"))

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errClear)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 2, stepErr.Index)
	assert.Equal(t, "clear-remote-cart", stepErr.Step)
	assert.NoError(t, stepErr.CompensationErr)

	// 失败步骤自身不补偿，已完成步骤逆序补偿
	assert.Equal(t, []string{"create-order", "reserve", "release", "cancel-order"}, executed)
}

func TestSaga_CompensationErrorsAreCollected(t *testing.T) {
	errCancel := errors.New("PATCH /orders/1/cancel: 500")

	s := NewSaga(0)
	s.AddStep("create-order", nil, func(context.Context) error { return errCancel })
	s.AddStep("boom", func(context.Context) error { return errors.New("boom") }, nil)

	err := s.Execute(context.Background())
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.ErrorIs(t, stepErr.CompensationErr, errCancel)
}

func TestSaga_Timeout(t *testing.T) {
	var executed []string

	s := NewSaga(20 * time.Millisecond)
	s.AddStep("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, nil)
	s.AddStep("after", recordStep(&executed, "after"), nil)

	err := s.Execute(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, executed)
}

func TestSaga_CompensateIgnoresCanceledRequest(t *testing.T) {
	var compensatedWith error

	ctx, cancel := context.WithCancel(context.Background())
	s := NewSaga(0)
	s.AddStep("create-order", nil, func(ctx context.Context) error {
		compensatedWith = ctx.Err()
		return nil
	})
	s.AddStep("cancel-request", func(context.Context) error {
		cancel()
		return context.Canceled
	}, nil)

	require.Error(t, s.Execute(ctx))
	assert.NoError(t, compensatedWith, "补偿必须使用未取消的context")
}
