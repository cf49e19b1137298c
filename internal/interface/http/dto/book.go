package dto

import (
	"github.com/xiebiao/librant-storefront/internal/domain/book"
)

// BookListResponse 图书列表响应
// generation是发起请求时的筛选代号，客户端只渲染代号不小于已渲染值的响应
type BookListResponse struct {
	List       []*book.Book `json:"list"`
	Total      int          `json:"total" example:"12"`
	Generation uint64       `json:"generation" example:"3"`
	Query      string       `json:"query" example:"category=Fiction&sortBy=price&sortOrder=asc"`
	Empty      bool         `json:"empty"`
	Actions    []string     `json:"actions,omitempty" example:"clear_filters"`
}

// BooksResponse 不带筛选的图书列表（推荐、新书、分类）
type BooksResponse struct {
	List  []*book.Book `json:"list"`
	Total int          `json:"total" example:"8"`
}

// NewBooksResponse 创建图书列表响应
func NewBooksResponse(books []*book.Book) *BooksResponse {
	return &BooksResponse{List: books, Total: len(books)}
}

// CategoriesResponse 分类列表响应
type CategoriesResponse struct {
	List []book.Category `json:"list"`
}
