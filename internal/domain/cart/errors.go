package cart

import (
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrMissingIdentity 条目没有任何键字段
	ErrMissingIdentity = apperrors.New(apperrors.ErrCodeInvalidParams, "缺少商品标识")

	// ErrInvalidQuantity 数量非法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidNumeric, "数量必须是非负整数")

	// ErrInvalidAmount 金额非法
	ErrInvalidAmount = apperrors.New(apperrors.ErrCodeInvalidNumeric, "金额必须是非负数")

	// ErrItemNotFound 条目不存在
	ErrItemNotFound = apperrors.ErrItemNotFound

	// ErrEmptyCart 购物车为空
	ErrEmptyCart = apperrors.ErrEmptyCart
)

// DefaultSyncError 远程同步失败且上游没有给出原因时的提示
const DefaultSyncError = "Failed to fetch cart"
