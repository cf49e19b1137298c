package dto

import (
	"bytes"
	"encoding/json"
)

// Quantity 用户输入的数量原文
// 接受数字或任意字符串，是否合法交给cart.ParseQuantity判断
type Quantity string

// UnmarshalJSON 数字按字面量保留，字符串去掉引号
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = Quantity(s)
		return nil
	}
	*q = Quantity(data)
	return nil
}

func (q Quantity) String() string {
	return string(q)
}

// AddCartItemRequest 加入购物车
// quantity可以是数字或数字字符串，缺省为1
type AddCartItemRequest struct {
	BookID   string   `json:"bookId" binding:"required" example:"665f1c2ab1e4a0d6c8f0a111"`
	Quantity Quantity `json:"quantity,omitempty" swaggertype:"integer" maximum:"9999" example:"1"`
}

// UpdateCartItemRequest 修改数量
type UpdateCartItemRequest struct {
	Quantity Quantity `json:"quantity" binding:"required" swaggertype:"integer" maximum:"9999" example:"2"`
}
