package order

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tone 订单状态的展示色调
type Tone string

const (
	ToneSuccess Tone = "success" // 已完成、支付成功
	ToneDanger  Tone = "danger"  // 失败、已取消
	ToneInfo    Tone = "info"    // 其余一律视为处理中
)

// DefaultStatus 订单和交易都没有状态时的展示值
const DefaultStatus = "pending"

// Transaction 支付交易信息
type Transaction struct {
	ID                string `json:"id,omitempty"`
	TransactionStatus string `json:"transactionStatus,omitempty"`
	Method            string `json:"method,omitempty"`
}

// Product 订单中的商品行
type Product struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// UnmarshalJSON 上游有时把product展开成图书对象，这时只取其_id
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		Product  json.RawMessage `json:"product"`
		Quantity int             `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Quantity = raw.Quantity
	p.Product = ""
	if len(raw.Product) == 0 || string(raw.Product) == "null" {
		return nil
	}
	if raw.Product[0] == '"' {
		return json.Unmarshal(raw.Product, &p.Product)
	}
	var ref struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(raw.Product, &ref); err != nil {
		return err
	}
	p.Product = ref.ID
	return nil
}

// Order 订单（远程API返回的订单）
type Order struct {
	ID          string          `json:"_id"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Products    []Product       `json:"products,omitempty"`
	Transaction *Transaction    `json:"transaction,omitempty"`
	PaymentURL  string          `json:"paymentUrl,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// DisplayStatus 展示状态：订单状态 → 交易状态 → pending
func (o *Order) DisplayStatus() string {
	if o.Status != "" {
		return o.Status
	}
	if o.Transaction != nil && o.Transaction.TransactionStatus != "" {
		return o.Transaction.TransactionStatus
	}
	return DefaultStatus
}

// Tone 按展示状态归类
func (o *Order) Tone() Tone {
	return Classify(o.DisplayStatus())
}

// Classify 状态归类（不区分大小写，按子串匹配）
func Classify(status string) Tone {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "complete"), strings.Contains(s, "success"):
		return ToneSuccess
	case strings.Contains(s, "fail"), strings.Contains(s, "cancel"):
		return ToneDanger
	default:
		return ToneInfo
	}
}

// Reference 订单号：优先交易号，没有则用订单_id
func (o *Order) Reference() string {
	if o.Transaction != nil && o.Transaction.ID != "" {
		return o.Transaction.ID
	}
	return o.ID
}

// CreateRequest 创建订单请求
type CreateRequest struct {
	Products []Product `json:"products"`
}

// PaymentVerification 支付校验结果（上游原样透传）
type PaymentVerification struct {
	OrderID string                 `json:"order_id"`
	Status  string                 `json:"status"`
	Detail  map[string]interface{} `json:"detail,omitempty"`
}
