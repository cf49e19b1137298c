package book

import (
	"context"

	"github.com/xiebiao/librant-storefront/internal/domain/book"
	"github.com/xiebiao/librant-storefront/internal/domain/filter"
	"github.com/xiebiao/librant-storefront/internal/domain/session"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

// ActionClearFilters 空结果时建议的操作：清空筛选
const ActionClearFilters = "clear_filters"

// BrowseBooksUseCase 按当前会话的筛选参数浏览图书
// 设计说明:
// 1. 筛选参数原样转发给远程API（列表参数为重复键）
// 2. 响应带回发起请求时的筛选代号，客户端据此丢弃乱序到达的旧响应
// 3. 空结果不是错误：返回empty=true和"清空筛选"操作
type BrowseBooksUseCase struct {
	books book.Repository
}

// NewBrowseBooksUseCase 创建浏览用例
func NewBrowseBooksUseCase(books book.Repository) *BrowseBooksUseCase {
	return &BrowseBooksUseCase{books: books}
}

// BrowseBooksResponse 浏览结果
type BrowseBooksResponse struct {
	Books      []*book.Book   `json:"books"`
	Count      int            `json:"count"`
	Generation uint64         `json:"generation"`
	Query      string         `json:"query"`
	Filters    *filter.Params `json:"filters"`
	Empty      bool           `json:"empty"`
	Actions    []string       `json:"actions,omitempty"`
}

// Execute 执行浏览
func (uc *BrowseBooksUseCase) Execute(ctx context.Context, sess *session.Session) (*BrowseBooksResponse, error) {
	// 1. 固定本次请求的筛选快照
	params := sess.Filters.Clone()
	generation := sess.FilterGeneration

	// 2. 查询远程目录
	books, err := uc.books.List(ctx, params.Values())
	if err != nil {
		return nil, catalogError(err)
	}

	// 3. 组装结果
	resp := &BrowseBooksResponse{
		Books:      books,
		Count:      len(books),
		Generation: generation,
		Query:      params.Encode(),
		Filters:    params,
	}
	if len(books) == 0 {
		resp.Books = []*book.Book{}
		resp.Empty = true
		resp.Actions = []string{ActionClearFilters}
	}
	return resp, nil
}

// catalogError 上游不可用统一转为"加载失败，请重试"，其他错误原样返回
func catalogError(err error) error {
	if apperrors.HasCode(err, apperrors.ErrCodeUpstream) ||
		apperrors.HasCode(err, apperrors.ErrCodeUpstreamTimeout) ||
		apperrors.HasCode(err, apperrors.ErrCodeCircuitOpen) {
		return book.ErrCatalogUnavailable.WithCause(err)
	}
	return err
}
