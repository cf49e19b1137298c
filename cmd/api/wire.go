//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 工作流程：
// Step 1: 编写wire.go（本文件），定义Provider Set和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go
// Step 4: main.go调用wire_gen.go中的InitializeApp()
//
// 会话存储和事件发布器由main按配置创建后传入，
// 它们带有需要在退出时释放的连接

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/librant-storefront/internal/application/book"
	appcart "github.com/xiebiao/librant-storefront/internal/application/cart"
	appfilter "github.com/xiebiao/librant-storefront/internal/application/filter"
	apporder "github.com/xiebiao/librant-storefront/internal/application/order"
	appuser "github.com/xiebiao/librant-storefront/internal/application/user"
	"github.com/xiebiao/librant-storefront/internal/domain/session"
	"github.com/xiebiao/librant-storefront/internal/infrastructure/config"
	"github.com/xiebiao/librant-storefront/internal/infrastructure/librant"
	"github.com/xiebiao/librant-storefront/internal/interface/http/handler"
	"github.com/xiebiao/librant-storefront/internal/interface/http/middleware"
	"github.com/xiebiao/librant-storefront/pkg/jwt"
	"github.com/xiebiao/librant-storefront/pkg/mq"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// repositorySet 远程API实现的各个仓储
var repositorySet = wire.NewSet(
	provideLibrantClient,
	librant.NewBookRepository,
	librant.NewRemoteCart,
	librant.NewOrderRepository,
	librant.NewAuthGateway,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	provideSyncMode,
	jwt.NewDecoder,
	appbook.NewBrowseBooksUseCase,
	appbook.NewLoadFacetsUseCase,
	appbook.NewCatalogUseCase,
	appfilter.NewChangeFiltersUseCase,
	appcart.NewCartUseCase,
	appcart.NewCheckoutUseCase,
	appuser.NewLoginUseCase,
	appuser.NewRegisterUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewUpdatePasswordUseCase,
	apporder.NewMyOrdersUseCase,
	apporder.NewManageOrderUseCase,
)

// handlerSet HTTP层
var handlerSet = wire.NewSet(
	middleware.NewSessionMiddleware,
	handler.NewBookHandler,
	handler.NewFilterHandler,
	handler.NewCartHandler,
	handler.NewUserHandler,
	handler.NewOrderHandler,
	wire.Struct(new(handler.Handlers), "*"),
	handler.NewRouter,
)

// ========================================
// Wire Injector
// ========================================

// InitializeApp 组装整个应用，返回配置好的Gin引擎
func InitializeApp(
	cfg *config.Config,
	logger *zap.Logger,
	sessions session.Repository,
	events mq.EventPublisher,
) *gin.Engine {
	wire.Build(
		repositorySet,
		applicationSet,
		handlerSet,
	)
	return nil
}
