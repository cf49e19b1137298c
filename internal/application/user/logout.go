package user

import (
	"context"
	"time"

	"github.com/xiebiao/librant-storefront/internal/domain/session"
)

// LogoutUseCase 退出登录：清除会话里的令牌和身份，购物车和筛选保留
type LogoutUseCase struct {
	sessions session.Repository
	now      func() time.Time
}

// NewLogoutUseCase 创建退出登录用例
func NewLogoutUseCase(sessions session.Repository) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions, now: time.Now}
}

// Execute 执行退出
func (uc *LogoutUseCase) Execute(ctx context.Context, sess *session.Session) error {
	if sess.Token == "" && sess.User == nil {
		return nil
	}
	sess.SignOut()
	sess.Touch(uc.now())
	return uc.sessions.Save(ctx, sess)
}
