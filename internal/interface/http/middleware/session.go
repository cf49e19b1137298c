package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/xiebiao/librant-storefront/internal/domain/session"
	"github.com/xiebiao/librant-storefront/internal/domain/user"
	"github.com/xiebiao/librant-storefront/internal/infrastructure/config"
	"github.com/xiebiao/librant-storefront/pkg/response"
)

const (
	sessionKey       = "storefront.session"
	sessionConfigKey = "storefront.session.config"
)

// SessionMiddleware 浏览器会话中间件
// 设计说明：
// 1. 会话ID放在HttpOnly Cookie里，购物车、筛选参数、登录令牌都保存在服务端
// 2. Cookie缺失或会话已过期时创建新会话（首次修改时才写入存储）
// 3. 会话里有令牌时放入请求context，远程API客户端据此带上authorization头
type SessionMiddleware struct {
	sessions session.Repository
	cfg      config.SessionConfig
	now      func() time.Time
}

// NewSessionMiddleware 创建会话中间件
func NewSessionMiddleware(sessions session.Repository, cfg *config.Config) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		cfg:      cfg.Session,
		now:      time.Now,
	}
}

// Handle 加载或创建会话
func (m *SessionMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var sess *session.Session
		if id, err := c.Cookie(m.cfg.CookieName); err == nil && id != "" {
			loaded, err := m.sessions.Get(ctx, id)
			switch {
			case err == nil:
				sess = loaded
			case errors.Is(err, session.ErrSessionNotFound):
			default:
				response.Error(c, err)
				c.Abort()
				return
			}
		}
		if sess == nil {
			sess = session.New(uuid.NewString(), m.now())
		}

		c.Set(sessionConfigKey, m.cfg)
		writeCookie(c, m.cfg, sess.ID)

		c.Set(sessionKey, sess)
		c.Request = c.Request.WithContext(user.ContextWithToken(ctx, sess.Token))
		c.Next()
	}
}

// RenewSessionCookie 会话ID变更后（如登录）重新下发Cookie
// 替换本次响应里已经写入的同名Cookie，响应中只保留新ID
func RenewSessionCookie(c *gin.Context) {
	v, ok := c.Get(sessionConfigKey)
	if !ok {
		return
	}
	cfg, ok := v.(config.SessionConfig)
	if !ok {
		return
	}
	writeCookie(c, cfg, GetSession(c).ID)
}

func writeCookie(c *gin.Context, cfg config.SessionConfig, id string) {
	header := c.Writer.Header()
	prefix := cfg.CookieName + "="
	var kept []string
	for _, v := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(v, prefix) {
			kept = append(kept, v)
		}
	}
	header.Del("Set-Cookie")
	for _, v := range kept {
		header.Add("Set-Cookie", v)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, id, int(cfg.TTL.Seconds()), "/", "", cfg.CookieSecure, true)
}

// GetSession 取出当前请求的会话
// 说明：用于已经挂载Handle中间件的路由
func GetSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	panic("session not found in context")
}

// SetSession 直接放入会话（测试和内部调用）
func SetSession(c *gin.Context, sess *session.Session) {
	c.Set(sessionKey, sess)
}
