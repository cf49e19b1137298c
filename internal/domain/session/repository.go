package session

import (
	"context"

	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = apperrors.New(apperrors.ErrCodeNotFound, "会话不存在")

// Repository 会话存储接口
// 实现：Redis（默认）、进程内存（单机开发）
type Repository interface {
	// Get 读取会话，不存在时返回ErrSessionNotFound
	Get(ctx context.Context, id string) (*Session, error)

	// Save 保存会话并刷新过期时间
	Save(ctx context.Context, s *Session) error

	// Delete 删除会话
	Delete(ctx context.Context, id string) error
}
