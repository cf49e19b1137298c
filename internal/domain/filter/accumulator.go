package filter

import (
	"strconv"
	"strings"

	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

// 筛选领域错误定义
var (
	// ErrInvalidFacet 勾选值不是"<facet>-<value>"格式
	ErrInvalidFacet = apperrors.ErrInvalidFacet

	// ErrInvalidRange 价格区间不是"min,max"格式
	ErrInvalidRange = apperrors.New(apperrors.ErrCodeInvalidFacet, "价格区间格式错误")

	// ErrInvalidSort 排序选项不在映射表中
	ErrInvalidSort = apperrors.ErrInvalidSort
)

// SortOption 排序选项
type SortOption struct {
	Value     string `json:"value"`
	Label     string `json:"label"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

// SortOptions 固定的两档价格排序
var SortOptions = []SortOption{
	{Value: "h-t-l", Label: "Price ↓", SortBy: "price", SortOrder: "desc"},
	{Value: "l-t-h", Label: "Price ↑", SortBy: "price", SortOrder: "asc"},
}

// PriceRanges 价格区间勾选项
var PriceRanges = []string{
	"range-0,20",
	"range-20,50",
	"range-50,100",
	"range-100,500",
}

// StockOptions 库存勾选项
var StockOptions = []string{"inStock-true", "inStock-false"}

// ParseToggle 拆分勾选值，只在第一个"-"处切分（值里可以带"-"）
func ParseToggle(encoded string) (facet, value string, err error) {
	facet, value, ok := strings.Cut(encoded, "-")
	if !ok || facet == "" || value == "" || reserved[facet] {
		return "", "", ErrInvalidFacet
	}
	return facet, value, nil
}

// Toggle 处理勾选/取消勾选
//
// 规则：
//  1. range：勾选时拆成minPrice、maxPrice两个标量；取消时两个都删除；不产生range键
//  2. inStock：单值标量，后勾选的覆盖先前的；取消时只有值相同才删除
//  3. 其他facet：勾选追加到列表（去重）；取消时移除，列表空了删除整个键；
//     取消一个不存在的值不做任何事
func (p *Params) Toggle(encoded string, checked bool) error {
	facet, value, err := ParseToggle(encoded)
	if err != nil {
		return err
	}

	switch facet {
	case FacetRange:
		if !checked {
			delete(p.scalars, KeyMinPrice)
			delete(p.scalars, KeyMaxPrice)
			return nil
		}
		lo, hi, err := parseRange(value)
		if err != nil {
			return err
		}
		p.setScalar(KeyMinPrice, lo)
		p.setScalar(KeyMaxPrice, hi)

	case FacetInStock:
		if checked {
			p.setScalar(FacetInStock, value)
		} else if cur, ok := p.scalars[FacetInStock]; ok && cur == value {
			delete(p.scalars, FacetInStock)
		}

	default:
		if checked {
			p.appendValue(facet, value)
		} else {
			p.removeValue(facet, value)
		}
	}
	return nil
}

func parseRange(value string) (string, string, error) {
	lo, hi, ok := strings.Cut(value, ",")
	if !ok {
		return "", "", ErrInvalidRange
	}
	lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
	loVal, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return "", "", ErrInvalidRange.WithCause(err)
	}
	hiVal, err := strconv.ParseFloat(hi, 64)
	if err != nil {
		return "", "", ErrInvalidRange.WithCause(err)
	}
	if loVal < 0 || hiVal < loVal {
		return "", "", ErrInvalidRange
	}
	return lo, hi, nil
}

// Search 设置搜索词，空白搜索词删除该参数
func (p *Params) Search(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		delete(p.scalars, KeySearchTerm)
		return
	}
	p.setScalar(KeySearchTerm, term)
}

// Sort 按排序选项设置sortBy、sortOrder
func (p *Params) Sort(option string) error {
	for _, o := range SortOptions {
		if o.Value == option {
			p.setScalar(KeySortBy, o.SortBy)
			p.setScalar(KeySortOrder, o.SortOrder)
			return nil
		}
	}
	return ErrInvalidSort
}
