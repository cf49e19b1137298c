package filter

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// 参数键
const (
	FacetRange    = "range"
	FacetInStock  = "inStock"
	FacetAuthor   = "author"
	FacetCategory = "category"

	KeyMinPrice   = "minPrice"
	KeyMaxPrice   = "maxPrice"
	KeySearchTerm = "searchTerm"
	KeySortBy     = "sortBy"
	KeySortOrder  = "sortOrder"
)

// reserved 只能通过专门的方法写入的标量键
var reserved = map[string]bool{
	KeyMinPrice:   true,
	KeyMaxPrice:   true,
	KeySearchTerm: true,
	KeySortBy:     true,
	KeySortOrder:  true,
}

// Params 筛选参数袋
// 设计说明：
// 1. 多选facet（author、category等）保存为列表，编码时产生重复的query键
// 2. 区间、库存、搜索、排序保存为标量
// 3. 同一个键不会同时出现在两张表里
type Params struct {
	scalars map[string]string
	lists   map[string][]string
}

// New 创建空参数袋
func New() *Params {
	return &Params{
		scalars: make(map[string]string),
		lists:   make(map[string][]string),
	}
}

func (p *Params) init() {
	if p.scalars == nil {
		p.scalars = make(map[string]string)
	}
	if p.lists == nil {
		p.lists = make(map[string][]string)
	}
}

// Scalar 读取标量参数
func (p *Params) Scalar(key string) (string, bool) {
	v, ok := p.scalars[key]
	return v, ok
}

// List 读取列表参数（返回副本）
func (p *Params) List(key string) []string {
	v, ok := p.lists[key]
	if !ok {
		return nil
	}
	return append([]string(nil), v...)
}

// Has 参数是否存在
func (p *Params) Has(key string) bool {
	if _, ok := p.scalars[key]; ok {
		return true
	}
	_, ok := p.lists[key]
	return ok
}

// Keys 所有参数键（排序后）
func (p *Params) Keys() []string {
	keys := make([]string, 0, len(p.scalars)+len(p.lists))
	for k := range p.scalars {
		keys = append(keys, k)
	}
	for k := range p.lists {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len 参数个数
func (p *Params) Len() int {
	return len(p.scalars) + len(p.lists)
}

func (p *Params) setScalar(key, value string) {
	p.init()
	delete(p.lists, key)
	p.scalars[key] = value
}

func (p *Params) appendValue(key, value string) {
	p.init()
	delete(p.scalars, key)
	for _, v := range p.lists[key] {
		if v == value {
			return
		}
	}
	p.lists[key] = append(p.lists[key], value)
}

// removeValue 从列表中移除值，列表为空时删除整个键
func (p *Params) removeValue(key, value string) {
	list, ok := p.lists[key]
	if !ok {
		return
	}
	kept := make([]string, 0, len(list))
	for _, v := range list {
		if v != value {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		delete(p.lists, key)
		return
	}
	p.lists[key] = kept
}

// Reset 清空所有参数
func (p *Params) Reset() {
	p.scalars = make(map[string]string)
	p.lists = make(map[string][]string)
}

// Clone 深拷贝
func (p *Params) Clone() *Params {
	c := New()
	for k, v := range p.scalars {
		c.scalars[k] = v
	}
	for k, v := range p.lists {
		c.lists[k] = append([]string(nil), v...)
	}
	return c
}

// Values 转为url.Values：列表产生重复键，标量产生单个键
func (p *Params) Values() url.Values {
	vals := url.Values{}
	for k, v := range p.scalars {
		vals.Set(k, v)
	}
	for k, list := range p.lists {
		for _, v := range list {
			vals.Add(k, v)
		}
	}
	return vals
}

// Encode 编码为query string（键按字典序）
func (p *Params) Encode() string {
	return p.Values().Encode()
}

// MarshalJSON 列表编码为数组，标量编码为字符串
func (p *Params) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, p.Len())
	for k, v := range p.scalars {
		out[k] = v
	}
	for k, v := range p.lists {
		out[k] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON 按值的形状还原为标量或列表
func (p *Params) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Reset()
	for k, msg := range raw {
		trimmed := strings.TrimSpace(string(msg))
		if strings.HasPrefix(trimmed, "[") {
			var list []string
			if err := json.Unmarshal(msg, &list); err != nil {
				return fmt.Errorf("filter param %q: %w", k, err)
			}
			if len(list) > 0 {
				p.lists[k] = list
			}
			continue
		}
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return fmt.Errorf("filter param %q: %w", k, err)
		}
		p.scalars[k] = s
	}
	return nil
}
