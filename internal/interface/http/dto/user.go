package dto

import (
	"github.com/xiebiao/librant-storefront/internal/domain/user"
)

// LoginRequest 登录请求
// 字段校验在应用层完成，返回字段级提示
type LoginRequest struct {
	Email    string `json:"email" example:"reader@librant.io"`
	Password string `json:"password" example:"secret123"`
}

// ToCredentials 转领域表单
func (r *LoginRequest) ToCredentials() *user.Credentials {
	return &user.Credentials{Email: r.Email, Password: r.Password}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" example:"Ann Reader"`
	Email    string `json:"email" example:"reader@librant.io"`
	Password string `json:"password" example:"secret123"`
}

// ToRegistration 转领域表单
func (r *RegisterRequest) ToRegistration() *user.Registration {
	return &user.Registration{Name: r.Name, Email: r.Email, Password: r.Password}
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	Email       string `json:"email" example:"reader@librant.io"`
	OldPassword string `json:"oldPassword" example:"secret123"`
	NewPassword string `json:"newPassword" example:"secret456"`
}

// ToPasswordChange 转领域表单
func (r *ChangePasswordRequest) ToPasswordChange() *user.PasswordChange {
	return &user.PasswordChange{Email: r.Email, OldPassword: r.OldPassword, NewPassword: r.NewPassword}
}

// ProfileResponse 当前登录身份
type ProfileResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *user.Claims `json:"user,omitempty"`
}
