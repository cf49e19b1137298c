package cart

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxQuantity 单个条目的数量上限，合并后也不能超过
const MaxQuantity = 9999

// ParseQuantity 解析用户输入的数量
// 非数字、小数、负数、超过上限一律拒绝
func ParseQuantity(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalidQuantity.WithCause(err)
	}
	if n < 0 || n > MaxQuantity {
		return 0, ErrInvalidQuantity
	}
	return n, nil
}

// ParseAmount 解析金额
func ParseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrInvalidAmount.WithCause(err)
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Validate 校验条目（数量、金额、键）
func (li LineItem) Validate() error {
	if li.Identity().IsZero() {
		return ErrMissingIdentity
	}
	if li.Quantity < 0 || li.Quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	if li.TotalPrice.IsNegative() {
		return ErrInvalidAmount
	}
	if li.UnitPrice != nil && li.UnitPrice.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
