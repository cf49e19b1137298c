package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
	"github.com/xiebiao/librant-storefront/pkg/logger"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（非HTTP状态码），方便客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回；表单校验失败时携带字段级错误
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// FieldErrors 表单校验失败时的data结构
type FieldErrors struct {
	Fields map[string]string `json:"fields"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	view, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 内部错误只进日志
	if appErr.Err != nil {
		logger.FromContext(c.Request.Context()).Warn("request failed",
			zap.Int("code", appErr.Code),
			zap.String("path", c.FullPath()),
			zap.Error(appErr.Err),
		)
	}

	resp := Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		resp.Data = FieldErrors{Fields: appErr.Fields}
	}
	c.JSON(http.StatusOK, resp)
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// =========================================
// 列表响应结构
// =========================================

// ListData 列表数据封装
// Empty为true时前端展示空状态，Actions给出纠正操作（如clear_filters）
type ListData struct {
	List    interface{} `json:"list"`
	Total   int         `json:"total"`
	Empty   bool        `json:"empty"`
	Actions []string    `json:"actions,omitempty"`
}

// NewListData 创建列表数据
func NewListData(list interface{}, total int, emptyActions ...string) *ListData {
	d := &ListData{
		List:  list,
		Total: total,
		Empty: total == 0,
	}
	if d.Empty {
		d.Actions = emptyActions
	}
	return d
}

// SuccessWithList 列表成功响应
func SuccessWithList(c *gin.Context, list interface{}, total int, emptyActions ...string) {
	Success(c, NewListData(list, total, emptyActions...))
}
