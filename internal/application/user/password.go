package user

import (
	"context"

	"github.com/xiebiao/librant-storefront/internal/domain/session"
	"github.com/xiebiao/librant-storefront/internal/domain/user"
	"github.com/xiebiao/librant-storefront/pkg/validator"
)

// UpdatePasswordUseCase 修改密码用例（需要登录）
type UpdatePasswordUseCase struct {
	gateway user.AuthGateway
}

// NewUpdatePasswordUseCase 创建修改密码用例
func NewUpdatePasswordUseCase(gateway user.AuthGateway) *UpdatePasswordUseCase {
	return &UpdatePasswordUseCase{gateway: gateway}
}

// Execute 执行修改密码
func (uc *UpdatePasswordUseCase) Execute(ctx context.Context, sess *session.Session, req *user.PasswordChange) error {
	if sess.Token == "" {
		return user.ErrUnauthorized
	}
	if err := validator.Struct(req); err != nil {
		return err
	}
	return uc.gateway.ChangePassword(user.ContextWithToken(ctx, sess.Token), req)
}
