package order

import (
	"context"
)

// Repository 订单接口(依赖倒置原则)
// 由远程API实现，调用方需要在ctx中携带登录Token
type Repository interface {
	// Create 创建订单
	Create(ctx context.Context, req *CreateRequest) (*Order, error)

	// FindByID 查询订单
	FindByID(ctx context.Context, id string) (*Order, error)

	// ListMine 当前用户的订单
	ListMine(ctx context.Context) ([]*Order, error)

	// Cancel 取消订单
	Cancel(ctx context.Context, id string) (*Order, error)

	// VerifyPayment 校验支付结果
	VerifyPayment(ctx context.Context, orderID string) (*PaymentVerification, error)
}
