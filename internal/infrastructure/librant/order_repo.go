package librant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xiebiao/librant-storefront/internal/domain/order"
)

// orderRepository 订单实现(远程API)
type orderRepository struct {
	client *Client
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(client *Client) order.Repository {
	return &orderRepository{client: client}
}

// Create 创建订单
func (r *orderRepository) Create(ctx context.Context, req *order.CreateRequest) (*order.Order, error) {
	if req == nil || len(req.Products) == 0 {
		return nil, order.ErrNoProducts
	}

	var o order.Order
	err := r.client.do(ctx, call{
		method:   http.MethodPost,
		path:     "/orders",
		body:     req,
		endpoint: "/orders",
	}, &o)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// FindByID 查询订单
func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	err := r.client.do(ctx, call{
		method:   http.MethodGet,
		path:     "/orders/" + url.PathEscape(id),
		endpoint: "/orders/{id}",
	}, &o)
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	if o.ID == "" {
		return nil, order.ErrOrderNotFound
	}
	return &o, nil
}

// ListMine 当前用户的订单
func (r *orderRepository) ListMine(ctx context.Context) ([]*order.Order, error) {
	const endpoint = "/orders/my-orders"

	var raw json.RawMessage
	if err := r.client.do(ctx, call{method: http.MethodGet, path: endpoint, endpoint: endpoint}, &raw); err != nil {
		return nil, err
	}
	list, err := decodeList[order.Order](raw)
	if err != nil {
		return nil, upstreamDecodeError(endpoint, err)
	}

	orders := make([]*order.Order, len(list))
	for i := range list {
		orders[i] = &list[i]
	}
	return orders, nil
}

// Cancel 取消订单
func (r *orderRepository) Cancel(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	err := r.client.do(ctx, call{
		method:   http.MethodPatch,
		path:     "/orders/" + url.PathEscape(id) + "/cancel",
		endpoint: "/orders/{id}/cancel",
	}, &o)
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	if o.ID == "" {
		o.ID = id
	}
	return &o, nil
}

type verifyBody struct {
	OrderID string `json:"order_id"`
}

// VerifyPayment 校验支付结果
// 上游把支付网关的返回原样放在data里（对象或单元素数组）
func (r *orderRepository) VerifyPayment(ctx context.Context, orderID string) (*order.PaymentVerification, error) {
	var raw json.RawMessage
	err := r.client.do(ctx, call{
		method:   http.MethodPost,
		path:     "/payment/verify",
		body:     verifyBody{OrderID: orderID},
		endpoint: "/payment/verify",
	}, &raw)
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}

	details, err := decodeDetails(raw)
	if err != nil {
		return nil, upstreamDecodeError("/payment/verify", err)
	}

	result := &order.PaymentVerification{OrderID: orderID, Status: order.DefaultStatus}
	if len(details) > 0 {
		result.Detail = details[0]
		result.Status = firstString(details[0], "transactionStatus", "transaction_status", "bank_status", "status", result.Status)
	}
	return result, nil
}

func decodeDetails(raw json.RawMessage) ([]map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []map[string]interface{}
		err := json.Unmarshal(trimmed, &list)
		return list, err
	}
	var single map[string]interface{}
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, err
	}
	return []map[string]interface{}{single}, nil
}

// firstString 取第一个非空的字符串字段，都没有时返回最后一个参数
func firstString(m map[string]interface{}, keysThenDefault ...string) string {
	n := len(keysThenDefault)
	for _, key := range keysThenDefault[:n-1] {
		if v, ok := m[key]; ok && v != nil {
			if s := fmt.Sprint(v); s != "" {
				return s
			}
		}
	}
	return keysThenDefault[n-1]
}
