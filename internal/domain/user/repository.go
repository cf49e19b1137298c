package user

import (
	"context"
)

// AuthGateway 认证接口(依赖倒置原则)
// 由远程API实现；密码只做转发，本服务不存储也不哈希
type AuthGateway interface {
	// Login 登录，返回访问令牌
	Login(ctx context.Context, cred *Credentials) (accessToken string, err error)

	// Register 注册
	Register(ctx context.Context, reg *Registration) error

	// ChangePassword 修改密码（ctx中需携带令牌）
	ChangePassword(ctx context.Context, req *PasswordChange) error
}
