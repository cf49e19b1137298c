package cart

import (
	"context"
)

// RemoteCart 远程购物车接口
// 由远程API实现，调用方需要在ctx中携带登录Token
type RemoteCart interface {
	// Fetch 拉取服务端购物车
	Fetch(ctx context.Context) ([]LineItem, error)

	// Add 加入商品，返回加入后的服务端购物车
	Add(ctx context.Context, bookID string, quantity int) ([]LineItem, error)

	// Update 修改条目数量
	Update(ctx context.Context, id string, quantity int) ([]LineItem, error)

	// Remove 删除条目
	Remove(ctx context.Context, id string) ([]LineItem, error)

	// Clear 清空服务端购物车
	Clear(ctx context.Context) error
}
