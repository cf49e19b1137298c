package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/librant-storefront/internal/application/order"
	"github.com/xiebiao/librant-storefront/internal/interface/http/dto"
	"github.com/xiebiao/librant-storefront/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
	"github.com/xiebiao/librant-storefront/pkg/response"
)

// OrderHandler 订单HTTP处理器（个人中心）
type OrderHandler struct {
	myOrders *apporder.MyOrdersUseCase
	manage   *apporder.ManageOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(myOrders *apporder.MyOrdersUseCase, manage *apporder.ManageOrderUseCase) *OrderHandler {
	return &OrderHandler{
		myOrders: myOrders,
		manage:   manage,
	}
}

// MyOrders 我的订单
// @Summary      我的订单
// @Description  订单列表，每行带展示状态和色调（success/danger/info）
// @Tags         订单
// @Produce      json
// @Security     SessionCookie
// @Success      200 {object} response.Response{data=apporder.MyOrdersResponse}
// @Failure      200 {object} response.Response "50300 Failed to load orders. Please try again."
// @Router       /api/v1/dashboard/orders [get]
func (h *OrderHandler) MyOrders(c *gin.Context) {
	result, err := h.myOrders.Execute(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetOrder 订单详情
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     SessionCookie
// @Param        id path string true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderDetail}
// @Failure      200 {object} response.Response "40403 订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	detail, err := h.manage.Get(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// CancelOrder 取消订单
// @Summary      取消订单
// @Tags         订单
// @Produce      json
// @Security     SessionCookie
// @Param        id path string true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderDetail}
// @Router       /api/v1/orders/{id}/cancel [patch]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	detail, err := h.manage.Cancel(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// VerifyPayment 支付结果校验
// @Summary      支付校验
// @Description  支付网关回跳后调用，透传远程API的校验结果
// @Tags         订单
// @Produce      json
// @Security     SessionCookie
// @Param        order_id query string true "订单号"
// @Success      200 {object} response.Response{data=order.PaymentVerification}
// @Router       /api/v1/orders/verify [get]
func (h *OrderHandler) VerifyPayment(c *gin.Context) {
	var query dto.VerifyPaymentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, apperrors.ErrInvalidParams.WithMessage("缺少订单号").WithCause(err))
		return
	}

	result, err := h.manage.VerifyPayment(c.Request.Context(), middleware.GetSession(c), query.OrderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
