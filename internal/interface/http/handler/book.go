package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/librant-storefront/internal/application/book"
	"github.com/xiebiao/librant-storefront/internal/interface/http/dto"
	"github.com/xiebiao/librant-storefront/internal/interface/http/middleware"
	"github.com/xiebiao/librant-storefront/pkg/response"
)

// BookHandler 图书目录HTTP处理器
// 说明：只做请求解析和响应转换，目录数据全部来自远程API
type BookHandler struct {
	browse  *appbook.BrowseBooksUseCase
	facets  *appbook.LoadFacetsUseCase
	catalog *appbook.CatalogUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	browse *appbook.BrowseBooksUseCase,
	facets *appbook.LoadFacetsUseCase,
	catalog *appbook.CatalogUseCase,
) *BookHandler {
	return &BookHandler{
		browse:  browse,
		facets:  facets,
		catalog: catalog,
	}
}

// ListBooks 按当前筛选浏览图书
// @Summary      浏览图书
// @Description  按会话中的筛选参数查询图书；结果为空时empty=true并建议clear_filters
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=dto.BookListResponse}
// @Failure      200 {object} response.Response "50300 目录加载失败，可重试"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	result, err := h.browse.Execute(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.BookListResponse{
		List:       result.Books,
		Total:      result.Count,
		Generation: result.Generation,
		Query:      result.Query,
		Empty:      result.Empty,
		Actions:    result.Actions,
	})
}

// Facets 筛选面板数据
// @Summary      筛选面板
// @Description  并发加载作者和分类的聚合计数
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=book.Facets}
// @Router       /api/v1/books/facets [get]
func (h *BookHandler) Facets(c *gin.Context) {
	facets, err := h.facets.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, facets)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path string true "图书ID"
// @Success      200 {object} response.Response{data=book.Book}
// @Failure      200 {object} response.Response "40402 图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	b, err := h.catalog.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, b)
}

// Featured 推荐图书
// @Summary      推荐图书
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=dto.BooksResponse}
// @Router       /api/v1/books/featured [get]
func (h *BookHandler) Featured(c *gin.Context) {
	books, err := h.catalog.Featured(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBooksResponse(books))
}

// NewArrivals 新书上架
// @Summary      新书上架
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=dto.BooksResponse}
// @Router       /api/v1/books/new-arrivals [get]
func (h *BookHandler) NewArrivals(c *gin.Context) {
	books, err := h.catalog.NewArrivals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBooksResponse(books))
}

// Categories 分类列表
// @Summary      分类列表
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=dto.CategoriesResponse}
// @Router       /api/v1/books/categories [get]
func (h *BookHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.CategoriesResponse{List: categories})
}

// ByCategory 某分类下的图书
// @Summary      分类图书
// @Tags         图书
// @Produce      json
// @Param        category path string true "分类名"
// @Success      200 {object} response.Response{data=dto.BooksResponse}
// @Router       /api/v1/books/category/{category} [get]
func (h *BookHandler) ByCategory(c *gin.Context) {
	books, err := h.catalog.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBooksResponse(books))
}
