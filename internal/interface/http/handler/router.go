package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/librant-storefront/internal/domain/user"
	"github.com/xiebiao/librant-storefront/internal/infrastructure/config"
	"github.com/xiebiao/librant-storefront/internal/interface/http/middleware"
	"github.com/xiebiao/librant-storefront/pkg/response"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	Book   *BookHandler
	Filter *FilterHandler
	Cart   *CartHandler
	User   *UserHandler
	Order  *OrderHandler
}

// NewRouter 创建Gin引擎并注册路由
// 中间件顺序：Recovery → Tracing → RequestLogger → Metrics → CORS → Session
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	sessionMiddleware *middleware.SessionMiddleware,
	h *Handlers,
) *gin.Engine {
	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.Tracing(),
		middleware.RequestLogger(logger),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	v1.Use(sessionMiddleware.Handle())
	{
		// 图书目录（公开）
		books := v1.Group("/books")
		{
			books.GET("", h.Book.ListBooks)
			books.GET("/facets", h.Book.Facets)
			books.GET("/featured", h.Book.Featured)
			books.GET("/new-arrivals", h.Book.NewArrivals)
			books.GET("/categories", h.Book.Categories)
			books.GET("/category/:category", h.Book.ByCategory)
			books.GET("/:id", h.Book.GetBook)
		}

		// 筛选参数（公开，保存在会话里）
		filters := v1.Group("/filters")
		{
			filters.GET("", h.Filter.GetFilters)
			filters.DELETE("", h.Filter.Reset)
			filters.POST("/toggle", h.Filter.Toggle)
			filters.POST("/search", h.Filter.Search)
			filters.POST("/sort", h.Filter.Sort)
		}

		// 购物车（local模式匿名可用，remote模式由用例要求登录）
		cart := v1.Group("/cart")
		{
			cart.GET("", h.Cart.GetCart)
			cart.DELETE("", h.Cart.ClearCart)
			cart.POST("/items", h.Cart.AddItem)
			cart.PATCH("/items/:id", h.Cart.UpdateItem)
			cart.DELETE("/items/:id", h.Cart.RemoveItem)
			cart.POST("/sync", middleware.RequireLogin(), h.Cart.SyncCart)
		}

		// 用户（公开）
		users := v1.Group("/users")
		{
			users.POST("/login", h.User.Login)
			users.POST("/register", h.User.Register)
			users.POST("/logout", h.User.Logout)
		}
		v1.GET("/profile", h.User.Profile)

		// 需要登录
		authorized := v1.Group("")
		authorized.Use(middleware.RequireLogin())
		{
			authorized.POST("/checkout", h.Cart.Checkout)
			authorized.PUT("/users/password", h.User.ChangePassword)

			authorized.GET("/orders/verify", h.Order.VerifyPayment)
			authorized.GET("/orders/:id", h.Order.GetOrder)
			authorized.PATCH("/orders/:id/cancel", h.Order.CancelOrder)

			dashboard := authorized.Group("/dashboard")
			dashboard.Use(middleware.RequireRole(user.RoleUser, user.RoleAdmin))
			{
				dashboard.GET("/orders", h.Order.MyOrders)
			}
		}
	}

	return r
}
