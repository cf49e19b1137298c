package librant

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/librant-storefront/internal/domain/book"
	"github.com/xiebiao/librant-storefront/internal/domain/cart"
)

// remoteCart 服务端购物车实现(远程API)
// 上游每次变更都返回完整购物车{items, totalAmount}，调用方整体替换本地状态
type remoteCart struct {
	client *Client
}

// NewRemoteCart 创建服务端购物车
func NewRemoteCart(client *Client) cart.RemoteCart {
	return &remoteCart{client: client}
}

// cartPayload 上游购物车数据
type cartPayload struct {
	Items       []cart.LineItem `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type addItemBody struct {
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
}

type quantityBody struct {
	Quantity int `json:"quantity"`
}

// Fetch 拉取服务端购物车
func (r *remoteCart) Fetch(ctx context.Context) ([]cart.LineItem, error) {
	return r.exchange(ctx, call{
		method:   http.MethodGet,
		path:     "/cart",
		endpoint: "/cart",
	})
}

// Add 加入商品
func (r *remoteCart) Add(ctx context.Context, bookID string, quantity int) ([]cart.LineItem, error) {
	return r.exchange(ctx, call{
		method:   http.MethodPost,
		path:     "/cart",
		body:     addItemBody{BookID: bookID, Quantity: quantity},
		endpoint: "/cart",
	})
}

// Update 修改条目数量
func (r *remoteCart) Update(ctx context.Context, id string, quantity int) ([]cart.LineItem, error) {
	items, err := r.exchange(ctx, call{
		method:   http.MethodPatch,
		path:     "/cart/" + url.PathEscape(id),
		body:     quantityBody{Quantity: quantity},
		endpoint: "/cart/{id}",
	})
	if isNotFound(err) {
		return nil, cart.ErrItemNotFound
	}
	return items, err
}

// Remove 删除条目
func (r *remoteCart) Remove(ctx context.Context, id string) ([]cart.LineItem, error) {
	items, err := r.exchange(ctx, call{
		method:   http.MethodDelete,
		path:     "/cart/" + url.PathEscape(id),
		endpoint: "/cart/{id}",
	})
	if isNotFound(err) {
		return nil, cart.ErrItemNotFound
	}
	return items, err
}

// Clear 清空服务端购物车
func (r *remoteCart) Clear(ctx context.Context) error {
	return r.client.do(ctx, call{
		method:   http.MethodDelete,
		path:     "/cart/clear",
		endpoint: "/cart/clear",
	}, nil)
}

// exchange 执行调用并取出条目；上游没有返回data时结果为nil（调用方保留本地条目）
func (r *remoteCart) exchange(ctx context.Context, cl call) ([]cart.LineItem, error) {
	var payload *cartPayload
	if err := r.client.do(ctx, cl, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}
	if payload.Items == nil {
		return []cart.LineItem{}, nil
	}
	for i := range payload.Items {
		payload.Items[i].Image = book.NormalizeImageURL(payload.Items[i].Image)
	}
	return payload.Items, nil
}
