package book

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/xiebiao/librant-storefront/internal/domain/book"
)

// LoadFacetsUseCase 加载筛选面板（作者、分类计数）
// 两个上游请求并发执行，任一失败取消另一个
type LoadFacetsUseCase struct {
	books book.Repository
}

// NewLoadFacetsUseCase 创建筛选面板用例
func NewLoadFacetsUseCase(books book.Repository) *LoadFacetsUseCase {
	return &LoadFacetsUseCase{books: books}
}

// Execute 加载筛选面板
func (uc *LoadFacetsUseCase) Execute(ctx context.Context) (*book.Facets, error) {
	var facets book.Facets

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		authors, err := uc.books.Authors(gctx)
		if err != nil {
			return err
		}
		facets.Authors = authors
		return nil
	})
	g.Go(func() error {
		categories, err := uc.books.CategoryCounts(gctx)
		if err != nil {
			return err
		}
		facets.Categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, catalogError(err)
	}

	if facets.Authors == nil {
		facets.Authors = []book.FacetCount{}
	}
	if facets.Categories == nil {
		facets.Categories = []book.FacetCount{}
	}
	return &facets, nil
}
