package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/librant-storefront/internal/domain/user"
	"github.com/xiebiao/librant-storefront/pkg/response"
)

// RequireLogin 要求登录
// 会话里有令牌且未过期才放行；令牌过期返回40102，由前台引导重新登录
//
// 使用方式：
//
//	authorized := v1.Group("")
//	authorized.Use(middleware.RequireLogin())
//	authorized.GET("/profile", userHandler.Profile)
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess.Token == "" || sess.User == nil {
			response.Error(c, user.ErrUnauthorized)
			c.Abort()
			return
		}
		if sess.User.Expired(time.Now()) {
			response.Error(c, user.ErrTokenExpired)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole 要求具备任一角色（需放在RequireLogin之后）
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if !sess.User.HasRole(roles...) {
			response.Error(c, user.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser 当前登录身份，未登录返回nil
func CurrentUser(c *gin.Context) *user.Claims {
	return GetSession(c).User
}
