package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/librant-storefront/internal/domain/session"
	"github.com/xiebiao/librant-storefront/internal/domain/user"
	"github.com/xiebiao/librant-storefront/internal/infrastructure/config"
	"github.com/xiebiao/librant-storefront/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var body struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Code
}

func withSession(sess *session.Session, handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{func(c *gin.Context) {
		SetSession(c, sess)
		c.Next()
	}}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 0})
	})
	r.GET("/private", chain...)
	return r
}

func TestRequireLogin(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		mutate func(s *session.Session)
		want   int
	}{
		{"匿名", func(s *session.Session) {}, apperrors.ErrCodeUnauthorized},
		{"已过期", func(s *session.Session) {
			s.SignIn("tok", &user.Claims{ID: "u1", ExpiresAt: now.Add(-time.Minute)})
		}, apperrors.ErrCodeTokenExpired},
		{"已登录", func(s *session.Session) {
			s.SignIn("tok", &user.Claims{ID: "u1", ExpiresAt: now.Add(time.Hour)})
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.New("s1", now)
			tt.mutate(sess)

			w := httptest.NewRecorder()
			withSession(sess, RequireLogin()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
			assert.Equal(t, tt.want, decodeCode(t, w))
		})
	}
}

func TestRequireRole(t *testing.T) {
	sess := session.New("s1", time.Now())
	sess.SignIn("tok", &user.Claims{ID: "u1", Role: "guest"})

	w := httptest.NewRecorder()
	withSession(sess, RequireLogin(), RequireRole(user.RoleUser, user.RoleAdmin)).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, apperrors.ErrCodeForbidden, decodeCode(t, w))

	sess.User.Role = user.RoleAdmin
	w = httptest.NewRecorder()
	withSession(sess, RequireLogin(), RequireRole(user.RoleUser, user.RoleAdmin)).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, 0, decodeCode(t, w))
}

func TestSessionMiddleware(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	cfg := &config.Config{Session: config.SessionConfig{CookieName: "sid", TTL: time.Hour}}

	existing := session.New("known", time.Now())
	existing.SignIn("tok-1", &user.Claims{ID: "u1"})
	require.NoError(t, store.Save(context.Background(), existing))

	var seenID, seenToken string
	r := gin.New()
	r.Use(NewSessionMiddleware(store, cfg).Handle())
	r.GET("/whoami", func(c *gin.Context) {
		seenID = GetSession(c).ID
		seenToken = user.TokenFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	t.Run("已有会话", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "known"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "known", seenID)
		assert.Equal(t, "tok-1", seenToken)
	})

	t.Run("未知会话创建新会话", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "gone"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEqual(t, "gone", seenID)
		assert.Empty(t, seenToken)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, seenID, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	})
}

func TestRenewSessionCookie(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	cfg := &config.Config{Session: config.SessionConfig{CookieName: "sid", TTL: time.Hour}}

	r := gin.New()
	r.Use(NewSessionMiddleware(store, cfg).Handle())
	r.POST("/login", func(c *gin.Context) {
		c.Writer.Header().Add("Set-Cookie", "theme=dark; Path=/")
		GetSession(c).ID = "after-login"
		RenewSessionCookie(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "before-login"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var sids []string
	others := 0
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "sid" {
			sids = append(sids, ck.Value)
		} else {
			others++
		}
	}
	assert.Equal(t, []string{"after-login"}, sids)
	assert.Equal(t, 1, others)
}
