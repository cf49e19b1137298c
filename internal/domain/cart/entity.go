package cart

import (
	"github.com/shopspring/decimal"
)

// LineItem 购物车条目
// 设计说明：
// 1. TotalPrice是冗余存储的小计，增量合并和改数量时直接修改
// 2. 至少有一个键字段非空
// 3. 金额使用decimal，避免浮点误差
type LineItem struct {
	BookID     string           `json:"bookId,omitempty"`
	ProductID  string           `json:"productId,omitempty"`
	RecordID   string           `json:"_id,omitempty"`
	Title      string           `json:"title"`
	Image      string           `json:"image,omitempty"`
	UnitPrice  *decimal.Decimal `json:"price,omitempty"`
	Quantity   int              `json:"quantity"`
	TotalPrice decimal.Decimal  `json:"totalPrice"`
}

// Identities 返回条目上所有非空的键
func (li LineItem) Identities() []Identity {
	ids := make([]Identity, 0, 3)
	if li.BookID != "" {
		ids = append(ids, BookRef(li.BookID))
	}
	if li.ProductID != "" {
		ids = append(ids, ProductRef(li.ProductID))
	}
	if li.RecordID != "" {
		ids = append(ids, RecordRef(li.RecordID))
	}
	return ids
}

// Identity 主标识：bookId优先，其次productId，最后_id
func (li LineItem) Identity() Identity {
	ids := li.Identities()
	if len(ids) == 0 {
		return Identity{}
	}
	return ids[0]
}

// Matches 条目的任一键与ref相等即匹配
func (li LineItem) Matches(ref Identity) bool {
	for _, id := range li.Identities() {
		if Equal(id, ref) {
			return true
		}
	}
	return false
}

// SameAs 两个条目是否指向同一商品
func (li LineItem) SameAs(other LineItem) bool {
	for _, id := range other.Identities() {
		if li.Matches(id) {
			return true
		}
	}
	return false
}

// ImpliedUnitPrice 由小计反推单价
// 数量为0时无法反推，退回条目自带的单价（没有则为0）
func (li LineItem) ImpliedUnitPrice() decimal.Decimal {
	if li.Quantity != 0 {
		return li.TotalPrice.Div(decimal.NewFromInt(int64(li.Quantity)))
	}
	if li.UnitPrice != nil {
		return *li.UnitPrice
	}
	return decimal.Zero
}

func (li LineItem) clone() LineItem {
	c := li
	if li.UnitPrice != nil {
		p := *li.UnitPrice
		c.UnitPrice = &p
	}
	return c
}

func cloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it.clone()
	}
	return out
}

// State 购物车状态快照
type State struct {
	Items          []LineItem      `json:"items"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	OrderedItems   []LineItem      `json:"orderedItems,omitempty"`
	OrderRef       string          `json:"orderId,omitempty"`
	Loading        bool            `json:"loading"`
	Error          string          `json:"error,omitempty"`
	SyncGeneration uint64          `json:"syncGeneration"`
}

// Count 购物车内商品总件数
func (s State) Count() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}

func (s State) clone() State {
	c := s
	c.Items = cloneItems(s.Items)
	c.OrderedItems = cloneItems(s.OrderedItems)
	return c
}

// sumTotals 小计求和
func sumTotals(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return total
}
