package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	appcart "github.com/xiebiao/librant-storefront/internal/application/cart"
	"github.com/xiebiao/librant-storefront/internal/domain/session"
	"github.com/xiebiao/librant-storefront/internal/infrastructure/config"
	"github.com/xiebiao/librant-storefront/internal/infrastructure/librant"
	"github.com/xiebiao/librant-storefront/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/librant-storefront/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/librant-storefront/pkg/circuitbreaker"
	"github.com/xiebiao/librant-storefront/pkg/mq"
)

// ========================================
// Custom Providers
// ========================================
// 构造参数需要从Config里提取时，手写Provider

// provideLibrantClient 从配置创建远程API客户端
func provideLibrantClient(cfg *config.Config, logger *zap.Logger) *librant.Client {
	return librant.NewClient(librant.Options{
		BaseURL:    cfg.API.ResolveBaseURL(),
		AuthScheme: cfg.API.AuthScheme,
		Timeout:    cfg.API.Timeout,
		Breaker: circuitbreaker.Config{
			MaxRequests: cfg.Breaker.MaxRequests,
			Interval:    cfg.Breaker.Interval,
			Timeout:     cfg.Breaker.Timeout,
			ReadyToTrip: circuitbreaker.ConsecutiveFailures(cfg.Breaker.FailureThreshold),
		},
		Logger: logger,
	})
}

// provideSyncMode 购物车同步模式
func provideSyncMode(cfg *config.Config) appcart.SyncMode {
	if cfg.Cart.SyncMode == config.CartSyncRemote {
		return appcart.SyncRemote
	}
	return appcart.SyncLocal
}

// provideSessionRepository 按配置选择会话存储
// 返回的cleanup在进程退出时关闭Redis连接
func provideSessionRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Repository, func(), error) {
	switch cfg.Session.Driver {
	case config.SessionDriverMemory:
		logger.Warn("using in-process session store, sessions are lost on restart")
		return memory.NewSessionStore(cfg.Session.TTL), func() {}, nil
	case config.SessionDriverRedis:
		client, err := redis.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("close redis failed", zap.Error(err))
			}
		}
		return redis.NewSessionStore(client, cfg.Session.KeyPrefix, cfg.Session.TTL), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unknown session driver %q", cfg.Session.Driver)
	}
}

// provideEventPublisher 按配置创建事件发布器，未启用时不发布
func provideEventPublisher(cfg *config.Config, logger *zap.Logger) (mq.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return mq.NopPublisher{}, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, logger)
}
