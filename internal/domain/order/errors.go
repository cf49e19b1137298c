package order

import (
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.ErrOrderNotFound

	// ErrNoProducts 下单时没有商品
	ErrNoProducts = apperrors.ErrEmptyCart

	// ErrOrdersUnavailable 订单列表加载失败
	ErrOrdersUnavailable = apperrors.ErrUpstream.WithMessage("Failed to load orders. Please try again.")
)
