package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/librant-storefront/internal/application/user"
	"github.com/xiebiao/librant-storefront/internal/interface/http/dto"
	"github.com/xiebiao/librant-storefront/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
	"github.com/xiebiao/librant-storefront/pkg/response"
)

// UserHandler 用户HTTP处理器
// 设计说明：
// 1. 访问令牌只保存在服务端会话里，不下发给浏览器
// 2. 表单校验失败返回40900，data.fields为字段级提示
type UserHandler struct {
	login    *appuser.LoginUseCase
	register *appuser.RegisterUseCase
	logout   *appuser.LogoutUseCase
	password *appuser.UpdatePasswordUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	login *appuser.LoginUseCase,
	register *appuser.RegisterUseCase,
	logout *appuser.LogoutUseCase,
	password *appuser.UpdatePasswordUseCase,
) *UserHandler {
	return &UserHandler{
		login:    login,
		register: register,
		logout:   logout,
		password: password,
	}
}

// Login 用户登录
// @Summary      用户登录
// @Description  转发给远程API登录，解码访问令牌并写入会话；成功后更换会话Cookie
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appuser.LoginResponse}
// @Failure      200 {object} response.Response "40101 Login failed: Invalid token"
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	result, err := h.login.Execute(c.Request.Context(), middleware.GetSession(c), req.ToCredentials())
	if err != nil {
		response.Error(c, err)
		return
	}
	// 登录后会话ID已更换
	middleware.RenewSessionCookie(c)
	response.Success(c, result)
}

// Register 用户注册
// @Summary      用户注册
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40900 表单校验失败"
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	if err := h.register.Execute(c.Request.Context(), req.ToRegistration()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Logout 退出登录
// @Summary      退出登录
// @Description  清除会话里的身份，购物车和筛选保留
// @Tags         用户
// @Produce      json
// @Success      200 {object} response.Response
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.logout.Execute(c.Request.Context(), middleware.GetSession(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ChangePassword 修改密码
// @Summary      修改密码
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        request body dto.ChangePasswordRequest true "密码信息"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40100 请先登录"
// @Router       /api/v1/users/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}

	if err := h.password.Execute(c.Request.Context(), middleware.GetSession(c), req.ToPasswordChange()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Profile 当前登录身份
// @Summary      个人信息
// @Tags         用户
// @Produce      json
// @Security     SessionCookie
// @Success      200 {object} response.Response{data=dto.ProfileResponse}
// @Router       /api/v1/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	claims := middleware.CurrentUser(c)
	response.Success(c, &dto.ProfileResponse{
		Authenticated: claims != nil,
		User:          claims,
	})
}
