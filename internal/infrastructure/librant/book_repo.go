package librant

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/xiebiao/librant-storefront/internal/domain/book"
)

// bookRepository 图书目录实现(远程API)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责远程图书到展示模型的转换（图片字段合并、数量缺省）
// 3. 上游404转换为ErrBookNotFound
type bookRepository struct {
	client *Client
}

// NewBookRepository 创建图书目录
func NewBookRepository(client *Client) book.Repository {
	return &bookRepository{client: client}
}

// List 按筛选参数查询图书（上游返回data.data）
func (r *bookRepository) List(ctx context.Context, query url.Values) ([]*book.Book, error) {
	return r.fetchBooks(ctx, call{
		method:   http.MethodGet,
		path:     "/books/get-all-books",
		query:    query,
		endpoint: "/books/get-all-books",
	})
}

// FindByID 查询单本图书
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var raw book.RemoteBook
	err := r.client.do(ctx, call{
		method:   http.MethodGet,
		path:     "/books/get-book/" + url.PathEscape(id),
		endpoint: "/books/get-book/{id}",
	}, &raw)
	if err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, err
	}
	if raw.ID == "" {
		return nil, book.ErrBookNotFound
	}
	return raw.ToBook(), nil
}

// Featured 推荐图书
func (r *bookRepository) Featured(ctx context.Context) ([]*book.Book, error) {
	return r.fetchBooks(ctx, call{
		method:   http.MethodGet,
		path:     "/books/featured",
		endpoint: "/books/featured",
	})
}

// NewArrivals 新书
func (r *bookRepository) NewArrivals(ctx context.Context) ([]*book.Book, error) {
	return r.fetchBooks(ctx, call{
		method:   http.MethodGet,
		path:     "/books/new-arrivals",
		endpoint: "/books/new-arrivals",
	})
}

// ByCategory 某分类下的图书
func (r *bookRepository) ByCategory(ctx context.Context, category string) ([]*book.Book, error) {
	return r.fetchBooks(ctx, call{
		method:   http.MethodGet,
		path:     "/books/category/" + url.PathEscape(category),
		endpoint: "/books/category/{category}",
	})
}

// Authors 作者聚合计数
func (r *bookRepository) Authors(ctx context.Context) ([]book.FacetCount, error) {
	return r.fetchCounts(ctx, "/books/authors")
}

// CategoryCounts 分类聚合计数
func (r *bookRepository) CategoryCounts(ctx context.Context) ([]book.FacetCount, error) {
	return r.fetchCounts(ctx, "/books/category")
}

// Categories 分类列表
// 上游可能返回分类名字符串数组，也可能返回分类对象数组
func (r *bookRepository) Categories(ctx context.Context) ([]book.Category, error) {
	const endpoint = "/books/categories"

	var raw json.RawMessage
	if err := r.client.do(ctx, call{method: http.MethodGet, path: endpoint, endpoint: endpoint}, &raw); err != nil {
		return nil, err
	}

	elems, err := decodeList[json.RawMessage](raw)
	if err != nil {
		return nil, upstreamDecodeError(endpoint, err)
	}

	categories := make([]book.Category, 0, len(elems))
	for _, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) > 0 && elem[0] == '"' {
			var name string
			if err := json.Unmarshal(elem, &name); err != nil {
				return nil, upstreamDecodeError(endpoint, err)
			}
			categories = append(categories, book.Category{ID: name, Name: name})
			continue
		}

		var c book.Category
		if err := json.Unmarshal(elem, &c); err != nil {
			return nil, upstreamDecodeError(endpoint, err)
		}
		if c.ID == "" {
			c.ID = c.Name
		}
		c.Image = book.NormalizeImageURL(c.Image)
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *bookRepository) fetchBooks(ctx context.Context, cl call) ([]*book.Book, error) {
	var raw json.RawMessage
	if err := r.client.do(ctx, cl, &raw); err != nil {
		return nil, err
	}
	list, err := decodeList[book.RemoteBook](raw)
	if err != nil {
		return nil, upstreamDecodeError(cl.endpoint, err)
	}
	return book.ToBooks(list), nil
}

func (r *bookRepository) fetchCounts(ctx context.Context, endpoint string) ([]book.FacetCount, error) {
	var raw json.RawMessage
	if err := r.client.do(ctx, call{method: http.MethodGet, path: endpoint, endpoint: endpoint}, &raw); err != nil {
		return nil, err
	}
	counts, err := decodeList[book.FacetCount](raw)
	if err != nil {
		return nil, upstreamDecodeError(endpoint, err)
	}
	return counts, nil
}
