package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/librant-storefront/internal/application/cart"
	"github.com/xiebiao/librant-storefront/internal/domain/cart"
	"github.com/xiebiao/librant-storefront/internal/interface/http/dto"
	"github.com/xiebiao/librant-storefront/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
	"github.com/xiebiao/librant-storefront/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	cart     *appcart.CartUseCase
	checkout *appcart.CheckoutUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartUseCase *appcart.CartUseCase, checkout *appcart.CheckoutUseCase) *CartHandler {
	return &CartHandler{
		cart:     cartUseCase,
		checkout: checkout,
	}
}

// GetCart 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Success      200 {object} response.Response{data=appcart.CartView}
// @Router       /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	response.Success(c, h.cart.View(middleware.GetSession(c)))
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  同一本书再次加入时数量和小计累加；quantity缺省为1
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        request body dto.AddCartItemRequest true "商品"
// @Success      200 {object} response.Response{data=appcart.CartView}
// @Failure      200 {object} response.Response "40008 数量非法"
// @Router       /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	qty := 1
	if req.Quantity != "" {
		n, err := cart.ParseQuantity(req.Quantity.String())
		if err != nil {
			response.Error(c, err)
			return
		}
		qty = n
	}

	view, err := h.cart.AddItem(c.Request.Context(), middleware.GetSession(c), appcart.AddItemRequest{
		BookID:   req.BookID,
		Quantity: qty,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateItem 修改数量
// @Summary      修改数量
// @Description  小计按原隐含单价重算；找不到条目时购物车不变
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        id path string true "bookId、productId或条目_id"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} response.Response{data=appcart.CartView}
// @Router       /api/v1/cart/items/{id} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}
	qty, err := cart.ParseQuantity(req.Quantity.String())
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.cart.UpdateQuantity(c.Request.Context(), middleware.GetSession(c), c.Param("id"), qty)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveItem 删除条目
// @Summary      删除条目
// @Tags         购物车
// @Produce      json
// @Param        id path string true "bookId、productId或条目_id"
// @Success      200 {object} response.Response{data=appcart.CartView}
// @Router       /api/v1/cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view, err := h.cart.RemoveItem(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Success      200 {object} response.Response{data=appcart.CartView}
// @Router       /api/v1/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	view, err := h.cart.Clear(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// SyncCart 拉取服务端购物车
// @Summary      同步购物车
// @Description  用服务端购物车整体替换本地状态；晚到的旧同步结果会被丢弃
// @Tags         购物车
// @Produce      json
// @Security     SessionCookie
// @Success      200 {object} response.Response{data=appcart.CartView}
// @Failure      200 {object} response.Response "40100 请先登录"
// @Router       /api/v1/cart/sync [post]
func (h *CartHandler) SyncCart(c *gin.Context) {
	view, err := h.cart.Sync(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Checkout 结算
// @Summary      结算
// @Description  创建订单并清空购物车，后续步骤失败时取消订单
// @Tags         购物车
// @Produce      json
// @Security     SessionCookie
// @Success      200 {object} response.Response{data=appcart.CheckoutResponse}
// @Failure      200 {object} response.Response "40001 购物车为空"
// @Router       /api/v1/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	result, err := h.checkout.Execute(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
