package user

import (
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrInvalidToken 令牌无法解码，本次登录失败
	ErrInvalidToken = apperrors.ErrInvalidToken

	// ErrLoginFailed 上游拒绝登录
	ErrLoginFailed = apperrors.ErrLoginFailed.WithMessage("Login failed")

	// ErrTokenExpired 令牌已过期
	ErrTokenExpired = apperrors.ErrTokenExpired
	// ErrUnauthorized 未登录
	ErrUnauthorized = apperrors.ErrUnauthorized

	// ErrForbidden 角色不符
	ErrForbidden = apperrors.ErrForbidden
)
