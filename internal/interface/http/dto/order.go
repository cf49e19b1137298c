package dto

// VerifyPaymentQuery 支付校验查询参数
type VerifyPaymentQuery struct {
	OrderID string `form:"order_id" binding:"required" example:"TX-20240601-001"`
}
