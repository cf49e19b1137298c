package user

import (
	"context"
	"time"
)

// 角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Claims 从访问令牌中解出的身份信息
// 说明：只用于展示和路由控制，签名校验由远程API负责
type Claims struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
}

// Expired 令牌是否已过期（没有exp视为不过期）
func (c *Claims) Expired(now time.Time) bool {
	if c == nil {
		return true
	}
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// HasRole 是否具有任一角色
func (c *Claims) HasRole(roles ...string) bool {
	if c == nil {
		return false
	}
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// Credentials 登录表单
type Credentials struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

// Registration 注册表单
type Registration struct {
	Name     string `json:"name" validate:"required" label:"Name"`
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required,min=6" label:"Password"`
}

// PasswordChange 修改密码表单
type PasswordChange struct {
	Email       string `json:"email" validate:"required,email" label:"Email"`
	OldPassword string `json:"oldPassword" validate:"required" label:"Current password"`
	NewPassword string `json:"newPassword" validate:"required,min=6" label:"New password"`
}

type tokenKey struct{}

// ContextWithToken 把访问令牌放入context，远程API客户端据此带上authorization头
func ContextWithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext 取出访问令牌
func TokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
