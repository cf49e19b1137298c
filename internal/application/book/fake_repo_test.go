package book

import (
	"context"
	"net/url"

	"github.com/xiebiao/librant-storefront/internal/domain/book"
)

// fakeBooks 可编程的图书目录
type fakeBooks struct {
	list           func(ctx context.Context, query url.Values) ([]*book.Book, error)
	findByID       func(ctx context.Context, id string) (*book.Book, error)
	featured       []*book.Book
	authors        func(ctx context.Context) ([]book.FacetCount, error)
	categoryCounts func(ctx context.Context) ([]book.FacetCount, error)
	categories     []book.Category
	err            error
}

func (f *fakeBooks) List(ctx context.Context, query url.Values) ([]*book.Book, error) {
	return f.list(ctx, query)
}

func (f *fakeBooks) FindByID(ctx context.Context, id string) (*book.Book, error) {
	return f.findByID(ctx, id)
}

func (f *fakeBooks) Featured(context.Context) ([]*book.Book, error) {
	return f.featured, f.err
}

func (f *fakeBooks) NewArrivals(context.Context) ([]*book.Book, error) {
	return nil, f.err
}

func (f *fakeBooks) ByCategory(_ context.Context, category string) ([]*book.Book, error) {
	return []*book.Book{{ID: "b-" + category, Category: category}}, f.err
}

func (f *fakeBooks) Authors(ctx context.Context) ([]book.FacetCount, error) {
	return f.authors(ctx)
}

func (f *fakeBooks) CategoryCounts(ctx context.Context) ([]book.FacetCount, error) {
	return f.categoryCounts(ctx)
}

func (f *fakeBooks) Categories(context.Context) ([]book.Category, error) {
	return f.categories, f.err
}
