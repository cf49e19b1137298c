package session

import (
	"time"

	"github.com/xiebiao/librant-storefront/internal/domain/cart"
	"github.com/xiebiao/librant-storefront/internal/domain/filter"
	"github.com/xiebiao/librant-storefront/internal/domain/user"
)

// Session 浏览器会话状态
// 设计说明：
//  1. 每个浏览器会话一个，按会话ID存取
//  2. 聚合了购物车状态、筛选参数和登录身份
//  3. FilterGeneration每次筛选变化时递增，列表响应带回该值，
//     客户端据此丢弃乱序到达的旧响应
type Session struct {
	ID               string         `json:"id"`
	Token            string         `json:"token,omitempty"`
	User             *user.Claims   `json:"user,omitempty"`
	Cart             cart.State     `json:"cart"`
	Filters          *filter.Params `json:"filters"`
	FilterGeneration uint64         `json:"filterGeneration"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// New 创建新会话
func New(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Cart:      cart.State{Items: []cart.LineItem{}},
		Filters:   filter.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Normalize 补齐反序列化后可能为空的字段
func (s *Session) Normalize() {
	if s.Filters == nil {
		s.Filters = filter.New()
	}
	if s.Cart.Items == nil {
		s.Cart.Items = []cart.LineItem{}
	}
}

// Authenticated 是否处于有效登录状态
func (s *Session) Authenticated(now time.Time) bool {
	return s.Token != "" && s.User != nil && !s.User.Expired(now)
}

// SignIn 记录登录身份
func (s *Session) SignIn(token string, claims *user.Claims) {
	s.Token = token
	s.User = claims
}

// SignOut 清除登录身份（购物车和筛选保留）
func (s *Session) SignOut() {
	s.Token = ""
	s.User = nil
}

// BumpFilters 筛选参数变化，返回新的代号
func (s *Session) BumpFilters() uint64 {
	s.FilterGeneration++
	return s.FilterGeneration
}

// Touch 更新时间戳
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now
}
