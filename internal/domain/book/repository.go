package book

import (
	"context"
	"net/url"
)

// Repository 图书目录接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层用远程API实现
// 2. 便于测试时替换为假实现
type Repository interface {
	// List 按筛选参数查询图书，query中列表参数为重复键
	List(ctx context.Context, query url.Values) ([]*Book, error)

	// FindByID 查询单本图书
	FindByID(ctx context.Context, id string) (*Book, error)

	// Featured 推荐图书
	Featured(ctx context.Context) ([]*Book, error)

	// NewArrivals 新书
	NewArrivals(ctx context.Context) ([]*Book, error)

	// ByCategory 某分类下的图书
	ByCategory(ctx context.Context, category string) ([]*Book, error)

	// Authors 作者聚合计数
	Authors(ctx context.Context) ([]FacetCount, error)

	// CategoryCounts 分类聚合计数
	CategoryCounts(ctx context.Context) ([]FacetCount, error)

	// Categories 分类列表
	Categories(ctx context.Context) ([]Category, error)
}
