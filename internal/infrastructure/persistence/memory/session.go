// Package memory 进程内会话存储（单机开发、测试）
package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/xiebiao/librant-storefront/internal/domain/session"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// SessionStore 进程内会话存储
// 保存序列化后的副本，读写语义与Redis实现一致（滑动过期、读出的是独立对象）
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewSessionStore 创建进程内会话存储
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get 读取会话
func (s *SessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok && !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, session.ErrSessionNotFound
	}

	var sess session.Session
	if err := json.Unmarshal(e.data, &sess); err != nil {
		return nil, session.ErrSessionNotFound
	}
	sess.ID = id
	sess.Normalize()
	return &sess, nil
}

// Save 保存会话并刷新过期时间，顺带清理已过期的会话
func (s *SessionStore) Save(_ context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return apperrors.Wrap(err, "序列化会话失败")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
		}
	}
	s.entries[sess.ID] = entry{data: data, expiresAt: now.Add(s.ttl)}
	return nil
}

// Delete 删除会话
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// Len 当前保存的会话数（含未清理的过期会话）
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

var _ session.Repository = (*SessionStore)(nil)
