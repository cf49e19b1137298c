package book

import (
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrCatalogUnavailable 图书目录加载失败
	ErrCatalogUnavailable = apperrors.ErrUpstream.WithMessage("Failed to load books. Please try again.")
)
