package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/librant-storefront/internal/domain/session"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

// DefaultKeyPrefix 会话Key前缀，完整Key为storefront:session:{id}
const DefaultKeyPrefix = "storefront:session:"

// cmdable SessionStore用到的Redis命令（测试中替换）
type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SessionStore 浏览器会话存储
// 设计说明：
// 1. 整个会话（购物车、筛选、登录身份）序列化为一个JSON值
// 2. 每次保存都刷新过期时间（滑动过期）
// 3. Key不存在或已过期时返回ErrSessionNotFound，由调用方新建会话
type SessionStore struct {
	client cmdable
	prefix string
	ttl    time.Duration
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client, prefix string, ttl time.Duration) *SessionStore {
	return newSessionStore(client, prefix, ttl)
}

func newSessionStore(client cmdable, prefix string, ttl time.Duration) *SessionStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &SessionStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *SessionStore) key(id string) string {
	return s.prefix + id
}

// Get 读取会话
func (s *SessionStore) Get(ctx context.Context, id string) (*session.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrSessionNotFound
		}
		return nil, apperrors.ErrSessionError.WithCause(err)
	}

	var sess session.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		// 无法解析的旧数据按不存在处理，调用方会覆盖
		return nil, session.ErrSessionNotFound
	}
	sess.ID = id
	sess.Normalize()
	return &sess, nil
}

// Save 保存会话并刷新过期时间
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return apperrors.Wrap(err, "序列化会话失败")
	}
	if err := s.client.Set(ctx, s.key(sess.ID), string(data), s.ttl).Err(); err != nil {
		return apperrors.ErrSessionError.WithCause(err)
	}
	return nil
}

// Delete 删除会话
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return apperrors.ErrSessionError.WithCause(err)
	}
	return nil
}

var _ session.Repository = (*SessionStore)(nil)
