package order

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/xiebiao/librant-storefront/internal/domain/order"
	"github.com/xiebiao/librant-storefront/internal/domain/session"
	"github.com/xiebiao/librant-storefront/internal/domain/user"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
	"github.com/xiebiao/librant-storefront/pkg/mq"
)

// OrderDetail 订单详情
type OrderDetail struct {
	*order.Order
	DisplayStatus string     `json:"displayStatus"`
	Tone          order.Tone `json:"tone"`
	Reference     string     `json:"reference"`
}

// NewOrderDetail 订单转详情
func NewOrderDetail(o *order.Order) *OrderDetail {
	return &OrderDetail{
		Order:         o,
		DisplayStatus: o.DisplayStatus(),
		Tone:          o.Tone(),
		Reference:     o.Reference(),
	}
}

// OrderCancelledEvent order.cancelled事件载荷
type OrderCancelledEvent struct {
	OrderID   string `json:"orderId"`
	Status    string `json:"status"`
	UserID    string `json:"userId,omitempty"`
	SessionID string `json:"sessionId"`
}

// ManageOrderUseCase 单个订单的查询、取消和支付校验
// 设计说明:
// 1. 都需要登录，令牌随ctx带给远程API
// 2. 订单归属由远程API校验
// 3. 取消成功后发布order.cancelled事件
type ManageOrderUseCase struct {
	orders order.Repository
	events mq.EventPublisher
	logger *zap.Logger
}

// NewManageOrderUseCase 创建订单管理用例
func NewManageOrderUseCase(orders order.Repository, events mq.EventPublisher, logger *zap.Logger) *ManageOrderUseCase {
	if events == nil {
		events = mq.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ManageOrderUseCase{orders: orders, events: events, logger: logger}
}

// Get 查询订单
func (uc *ManageOrderUseCase) Get(ctx context.Context, sess *session.Session, id string) (*OrderDetail, error) {
	ctx, id, err := authorize(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	o, err := uc.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewOrderDetail(o), nil
}

// Cancel 取消订单
func (uc *ManageOrderUseCase) Cancel(ctx context.Context, sess *session.Session, id string) (*OrderDetail, error) {
	ctx, id, err := authorize(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	o, err := uc.orders.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.ID == "" {
		o.ID = id
	}

	event := OrderCancelledEvent{
		OrderID:   o.ID,
		Status:    o.DisplayStatus(),
		SessionID: sess.ID,
	}
	if sess.User != nil {
		event.UserID = sess.User.ID
	}
	if err := uc.events.Publish(ctx, mq.RoutingOrderCancelled, event); err != nil {
		uc.logger.Warn("publish order cancelled event failed",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
	}
	return NewOrderDetail(o), nil
}

// VerifyPayment 校验支付结果（透传远程API）
func (uc *ManageOrderUseCase) VerifyPayment(ctx context.Context, sess *session.Session, orderID string) (*order.PaymentVerification, error) {
	ctx, orderID, err := authorize(ctx, sess, orderID)
	if err != nil {
		return nil, err
	}
	return uc.orders.VerifyPayment(ctx, orderID)
}

// authorize 检查登录并整理订单号
func authorize(ctx context.Context, sess *session.Session, id string) (context.Context, string, error) {
	if sess.Token == "" {
		return ctx, "", user.ErrUnauthorized
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx, "", apperrors.ErrInvalidParams.WithMessage("缺少订单号")
	}
	return user.ContextWithToken(ctx, sess.Token), id, nil
}
