package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/librant-storefront/internal/domain/user"
	"github.com/xiebiao/librant-storefront/pkg/validator"
)

// RegisterUseCase 用户注册用例
// 注册成功不自动登录，与前台流程一致：注册后跳转登录页
type RegisterUseCase struct {
	gateway user.AuthGateway
	logger  *zap.Logger
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(gateway user.AuthGateway, logger *zap.Logger) *RegisterUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegisterUseCase{gateway: gateway, logger: logger}
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, reg *user.Registration) error {
	if err := validator.Struct(reg); err != nil {
		return err
	}
	if err := uc.gateway.Register(ctx, reg); err != nil {
		return err
	}
	uc.logger.Info("user registered", zap.String("email", reg.Email))
	return nil
}
