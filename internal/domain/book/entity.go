package book

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Book 图书（前台展示模型）
// 说明：
// 1. 图书数据全部来自远程API，这里只做展示所需的整理
// 2. Image已经过图床域名修正
// 3. Quantity缺省为0
type Book struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    string          `json:"category"`
	InStock     bool            `json:"inStock"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
}

// RemoteBook 远程API返回的图书
// 上游有时用image，有时用imageUrl
type RemoteBook struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Price       decimal.Decimal `json:"price"`
	Quantity    *int            `json:"quantity"`
	Category    string          `json:"category"`
	InStock     bool            `json:"inStock"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	ImageURL    string          `json:"imageUrl"`
}

// ToBook 转为展示模型
func (r RemoteBook) ToBook() *Book {
	qty := 0
	if r.Quantity != nil {
		qty = *r.Quantity
	}
	img := r.Image
	if img == "" {
		img = r.ImageURL
	}
	return &Book{
		ID:          r.ID,
		Title:       r.Title,
		Author:      r.Author,
		Price:       r.Price,
		Quantity:    qty,
		Category:    r.Category,
		InStock:     r.InStock,
		Description: r.Description,
		Image:       NormalizeImageURL(img),
	}
}

// ToBooks 批量转换
func ToBooks(raw []RemoteBook) []*Book {
	books := make([]*Book, 0, len(raw))
	for _, r := range raw {
		books = append(books, r.ToBook())
	}
	return books
}

const (
	brokenImageHost = "i.ibb.co.com"
	imageHost       = "i.ibb.co"
)

// NormalizeImageURL 修正上游配置错误产生的图床域名（i.ibb.co.com → i.ibb.co）
func NormalizeImageURL(url string) string {
	if strings.Contains(url, brokenImageHost) {
		return strings.Replace(url, brokenImageHost, imageHost, 1)
	}
	return url
}

// FacetCount 作者/分类聚合计数
type FacetCount struct {
	ID    string `json:"_id"`
	Count int    `json:"count"`
}

// Facets 筛选面板数据
type Facets struct {
	Authors    []FacetCount `json:"authors"`
	Categories []FacetCount `json:"categories"`
}

// Category 分类
type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}
