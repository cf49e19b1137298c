package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/librant-storefront/internal/domain/order"
	"github.com/xiebiao/librant-storefront/internal/domain/session"
	"github.com/xiebiao/librant-storefront/internal/domain/user"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

// OrderSummary 订单列表中的一行
type OrderSummary struct {
	ID         string          `json:"_id"`
	Reference  string          `json:"reference"`
	Status     string          `json:"status"`
	Tone       order.Tone      `json:"tone"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	ItemCount  int             `json:"itemCount"`
	PaymentURL string          `json:"paymentUrl,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// NewOrderSummary 订单转列表行
func NewOrderSummary(o *order.Order) OrderSummary {
	count := 0
	for _, p := range o.Products {
		count += p.Quantity
	}
	return OrderSummary{
		ID:         o.ID,
		Reference:  o.Reference(),
		Status:     o.DisplayStatus(),
		Tone:       o.Tone(),
		TotalPrice: o.TotalPrice,
		ItemCount:  count,
		PaymentURL: o.PaymentURL,
		CreatedAt:  o.CreatedAt,
	}
}

// MyOrdersResponse 我的订单
type MyOrdersResponse struct {
	Orders []OrderSummary `json:"orders"`
	Count  int            `json:"count"`
	Empty  bool           `json:"empty"`
}

// MyOrdersUseCase 我的订单用例（个人中心）
type MyOrdersUseCase struct {
	orders order.Repository
}

// NewMyOrdersUseCase 创建我的订单用例
func NewMyOrdersUseCase(orders order.Repository) *MyOrdersUseCase {
	return &MyOrdersUseCase{orders: orders}
}

// Execute 查询当前用户的订单
// 上游不可用时返回可重试的加载失败提示
func (uc *MyOrdersUseCase) Execute(ctx context.Context, sess *session.Session) (*MyOrdersResponse, error) {
	if sess.Token == "" {
		return nil, user.ErrUnauthorized
	}

	list, err := uc.orders.ListMine(user.ContextWithToken(ctx, sess.Token))
	if err != nil {
		return nil, ordersError(err)
	}

	summaries := make([]OrderSummary, 0, len(list))
	for _, o := range list {
		if o == nil {
			continue
		}
		summaries = append(summaries, NewOrderSummary(o))
	}
	return &MyOrdersResponse{
		Orders: summaries,
		Count:  len(summaries),
		Empty:  len(summaries) == 0,
	}, nil
}

// ordersError 上游故障统一成订单加载失败，业务错误原样返回
func ordersError(err error) error {
	switch {
	case apperrors.HasCode(err, apperrors.ErrCodeUpstream),
		apperrors.HasCode(err, apperrors.ErrCodeUpstreamTimeout),
		apperrors.HasCode(err, apperrors.ErrCodeCircuitOpen):
		return order.ErrOrdersUnavailable.WithCause(err)
	default:
		return err
	}
}
