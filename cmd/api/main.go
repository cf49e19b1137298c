package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	_ "github.com/xiebiao/librant-storefront/docs"
	"github.com/xiebiao/librant-storefront/internal/infrastructure/config"
	"github.com/xiebiao/librant-storefront/pkg/logger"
	"github.com/xiebiao/librant-storefront/pkg/metrics"
	"github.com/xiebiao/librant-storefront/pkg/tracing"
)

// @title                       Librant Storefront API
// @version                     1.0
// @description                 Librant在线书店的前台BFF服务：图书浏览、筛选、购物车、结算、个人中心
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  SessionCookie
// @in                          header
// @name                        Cookie

// main 主程序入口
func main() {
	// 1. 加载配置（.env可选）
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 日志
	zlog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
		ServiceName:  cfg.Tracing.ServiceName,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("service exited", zap.Error(err))
	}
}

// run 启动服务并等待退出信号
func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. 指标和链路追踪
	metrics.InitMetrics()
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(ctx, tracing.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Environment: cfg.API.Environment,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				zlog.Warn("tracer shutdown failed", zap.Error(err))
			}
		}()
	}

	// 4. 会话存储和事件发布
	sessions, cleanup, err := provideSessionRepository(ctx, cfg, zlog)
	if err != nil {
		return fmt.Errorf("init session store: %w", err)
	}
	defer cleanup()

	events, err := provideEventPublisher(cfg, zlog)
	if err != nil {
		return fmt.Errorf("init event publisher: %w", err)
	}
	defer func() {
		if err := events.Close(); err != nil {
			zlog.Warn("close event publisher failed", zap.Error(err))
		}
	}()

	// 5. 依赖注入
	engine := InitializeApp(cfg, zlog, sessions, events)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 6. 启动
	errCh := make(chan error, 1)
	go func() {
		zlog.Info("storefront started",
			zap.String("addr", srv.Addr),
			zap.String("api", cfg.API.ResolveBaseURL()),
			zap.String("session_driver", cfg.Session.Driver),
			zap.String("cart_sync", cfg.Cart.SyncMode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 7. 优雅退出
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
