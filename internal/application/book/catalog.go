package book

import (
	"context"
	"strings"

	"github.com/xiebiao/librant-storefront/internal/domain/book"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

// CatalogUseCase 首页和详情页的只读查询
// 包括：单本图书、推荐、新书、分类列表、某分类下的图书
type CatalogUseCase struct {
	books book.Repository
}

// NewCatalogUseCase 创建目录查询用例
func NewCatalogUseCase(books book.Repository) *CatalogUseCase {
	return &CatalogUseCase{books: books}
}

// GetBook 图书详情
func (uc *CatalogUseCase) GetBook(ctx context.Context, id string) (*book.Book, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.ErrInvalidParams.WithMessage("缺少图书ID")
	}
	b, err := uc.books.FindByID(ctx, id)
	if err != nil {
		return nil, catalogError(err)
	}
	return b, nil
}

// Featured 推荐图书
func (uc *CatalogUseCase) Featured(ctx context.Context) ([]*book.Book, error) {
	return nonNil(uc.books.Featured(ctx))
}

// NewArrivals 新书
func (uc *CatalogUseCase) NewArrivals(ctx context.Context) ([]*book.Book, error) {
	return nonNil(uc.books.NewArrivals(ctx))
}

// ByCategory 某分类下的图书
func (uc *CatalogUseCase) ByCategory(ctx context.Context, category string) ([]*book.Book, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.ErrInvalidParams.WithMessage("缺少分类")
	}
	return nonNil(uc.books.ByCategory(ctx, category))
}

// Categories 分类列表
func (uc *CatalogUseCase) Categories(ctx context.Context) ([]book.Category, error) {
	categories, err := uc.books.Categories(ctx)
	if err != nil {
		return nil, catalogError(err)
	}
	if categories == nil {
		categories = []book.Category{}
	}
	return categories, nil
}

func nonNil(books []*book.Book, err error) ([]*book.Book, error) {
	if err != nil {
		return nil, catalogError(err)
	}
	if books == nil {
		books = []*book.Book{}
	}
	return books, nil
}
