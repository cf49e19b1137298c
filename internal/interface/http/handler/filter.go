package handler

import (
	"github.com/gin-gonic/gin"

	appfilter "github.com/xiebiao/librant-storefront/internal/application/filter"
	"github.com/xiebiao/librant-storefront/internal/interface/http/dto"
	"github.com/xiebiao/librant-storefront/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
	"github.com/xiebiao/librant-storefront/pkg/response"
)

// FilterHandler 筛选参数HTTP处理器
type FilterHandler struct {
	changeFilters *appfilter.ChangeFiltersUseCase
}

// NewFilterHandler 创建筛选处理器
func NewFilterHandler(changeFilters *appfilter.ChangeFiltersUseCase) *FilterHandler {
	return &FilterHandler{changeFilters: changeFilters}
}

// GetFilters 当前筛选参数
// @Summary      当前筛选
// @Tags         筛选
// @Produce      json
// @Success      200 {object} response.Response{data=appfilter.FilterState}
// @Router       /api/v1/filters [get]
func (h *FilterHandler) GetFilters(c *gin.Context) {
	response.Success(c, appfilter.CurrentState(middleware.GetSession(c)))
}

// Toggle 勾选或取消筛选项
// @Summary      勾选筛选项
// @Description  value格式"<facet>-<value>"；range-<min>,<max>展开为minPrice、maxPrice
// @Tags         筛选
// @Accept       json
// @Produce      json
// @Param        request body dto.ToggleFilterRequest true "筛选项"
// @Success      200 {object} response.Response{data=appfilter.FilterState}
// @Failure      200 {object} response.Response "40006 筛选项格式错误"
// @Router       /api/v1/filters/toggle [post]
func (h *FilterHandler) Toggle(c *gin.Context) {
	var req dto.ToggleFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}
	h.change(c, appfilter.ChangeFiltersRequest{
		Kind:    appfilter.KindToggle,
		Encoded: req.Value,
		Checked: req.Checked,
	})
}

// Search 设置搜索词
// @Summary      搜索
// @Tags         筛选
// @Accept       json
// @Produce      json
// @Param        request body dto.SearchFilterRequest true "搜索词"
// @Success      200 {object} response.Response{data=appfilter.FilterState}
// @Router       /api/v1/filters/search [post]
func (h *FilterHandler) Search(c *gin.Context) {
	var req dto.SearchFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}
	h.change(c, appfilter.ChangeFiltersRequest{Kind: appfilter.KindSearch, Term: req.Term})
}

// Sort 设置排序
// @Summary      排序
// @Tags         筛选
// @Accept       json
// @Produce      json
// @Param        request body dto.SortFilterRequest true "排序选项"
// @Success      200 {object} response.Response{data=appfilter.FilterState}
// @Failure      200 {object} response.Response "40007 不支持的排序方式"
// @Router       /api/v1/filters/sort [post]
func (h *FilterHandler) Sort(c *gin.Context) {
	var req dto.SortFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}
	h.change(c, appfilter.ChangeFiltersRequest{Kind: appfilter.KindSort, Option: req.Option})
}

// Reset 清空筛选
// @Summary      清空筛选
// @Tags         筛选
// @Produce      json
// @Success      200 {object} response.Response{data=appfilter.FilterState}
// @Router       /api/v1/filters [delete]
func (h *FilterHandler) Reset(c *gin.Context) {
	h.change(c, appfilter.ChangeFiltersRequest{Kind: appfilter.KindReset})
}

func (h *FilterHandler) change(c *gin.Context, req appfilter.ChangeFiltersRequest) {
	state, err := h.changeFilters.Execute(c.Request.Context(), middleware.GetSession(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}
