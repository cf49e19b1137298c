package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型（不直接暴露HTTP状态码）
// 2. Message是展示给用户的提示信息
// 3. Err是内部错误，只进日志，不返回给客户端
// 4. Fields是表单字段级错误（字段名 → 提示），仅校验失败时填充
type AppError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码判等，预定义错误被Wrap之后仍可用errors.Is识别
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（网络错误、Redis错误等）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// WithCause 复制预定义错误并挂上内部原因
// 用法：return apperrors.ErrUpstream.WithCause(err)
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Fields:  e.Fields,
		Err:     err,
	}
}

// WithMessage 复制预定义错误并替换提示信息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Fields:  e.Fields,
		Err:     e.Err,
	}
}

// Validation 创建字段级校验错误
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidParams,
		Message: "表单校验失败",
		Fields:  fields,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（会话存储异常、上游API调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal     = 50000 // 内部错误
	ErrCodeSessionError = 50002 // 会话存储错误

	// 上游服务错误（50300-50399）
	ErrCodeUpstream        = 50300 // 上游API不可用
	ErrCodeUpstreamTimeout = 50301 // 上游API超时
	ErrCodeCircuitOpen     = 50302 // 熔断器打开

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized = 40100 // 未登录
	ErrCodeInvalidToken = 40101 // Token无效
	ErrCodeTokenExpired = 40102 // Token过期
	ErrCodeLoginFailed  = 40103 // 登录失败
	ErrCodeForbidden    = 40104 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound      = 40400 // 资源不存在(通用)
	ErrCodeBookNotFound  = 40402 // 图书不存在
	ErrCodeOrderNotFound = 40403 // 订单不存在
	ErrCodeItemNotFound  = 40404 // 购物车条目不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError  = 40000 // 业务错误(通用)
	ErrCodeEmptyCart      = 40001 // 购物车为空
	ErrCodeInvalidFacet   = 40006 // 筛选项格式错误
	ErrCodeInvalidSort    = 40007 // 排序选项非法
	ErrCodeInvalidNumeric = 40008 // 数量/金额非法

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal     = New(ErrCodeInternal, "系统内部错误")
	ErrSessionError = New(ErrCodeSessionError, "会话服务错误")

	// 上游服务
	ErrUpstream        = New(ErrCodeUpstream, "服务暂时不可用，请稍后重试")
	ErrUpstreamTimeout = New(ErrCodeUpstreamTimeout, "服务响应超时，请稍后重试")
	ErrCircuitOpen     = New(ErrCodeCircuitOpen, "服务繁忙，请稍后重试")

	// 认证授权
	ErrUnauthorized = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken = New(ErrCodeInvalidToken, "Login failed: Invalid token")
	ErrTokenExpired = New(ErrCodeTokenExpired, "登录已过期，请重新登录")
	ErrLoginFailed  = New(ErrCodeLoginFailed, "登录失败")
	ErrForbidden    = New(ErrCodeForbidden, "无权限访问")

	// 资源不存在
	ErrNotFound      = New(ErrCodeNotFound, "资源不存在")
	ErrBookNotFound  = New(ErrCodeBookNotFound, "图书不存在")
	ErrOrderNotFound = New(ErrCodeOrderNotFound, "订单不存在")
	ErrItemNotFound  = New(ErrCodeItemNotFound, "购物车中没有该商品")

	// 业务规则
	ErrBusiness       = New(ErrCodeBusinessError, "操作失败")
	ErrEmptyCart      = New(ErrCodeEmptyCart, "购物车为空")
	ErrInvalidFacet   = New(ErrCodeInvalidFacet, "筛选项格式错误")
	ErrInvalidSort    = New(ErrCodeInvalidSort, "不支持的排序方式")
	ErrInvalidNumeric = New(ErrCodeInvalidNumeric, "数量或金额格式错误")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// HasCode 判断错误链上是否有指定错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
