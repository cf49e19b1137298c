package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/librant-storefront/internal/domain/session"
	"github.com/xiebiao/librant-storefront/internal/domain/user"
	"github.com/xiebiao/librant-storefront/pkg/jwt"
	"github.com/xiebiao/librant-storefront/pkg/metrics"
	"github.com/xiebiao/librant-storefront/pkg/mq"
	"github.com/xiebiao/librant-storefront/pkg/validator"
)

// LoginUseCase 用户登录用例
// 设计说明：
// 1. 校验表单（字段级提示）
// 2. 调用远程API登录，拿到访问令牌
// 3. 本地只解码令牌载荷（不验签），解码失败本次登录失败，会话保持未登录
// 4. 令牌和身份写入会话，浏览器只持有会话Cookie
// 5. 登录成功后更换会话ID并删除旧ID，登录前拿到的会话ID不能变成已登录会话
type LoginUseCase struct {
	sessions session.Repository
	gateway  user.AuthGateway
	decoder  *jwt.Decoder
	events   mq.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	sessions session.Repository,
	gateway user.AuthGateway,
	decoder *jwt.Decoder,
	events mq.EventPublisher,
	logger *zap.Logger,
) *LoginUseCase {
	if events == nil {
		events = mq.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginUseCase{
		sessions: sessions,
		gateway:  gateway,
		decoder:  decoder,
		events:   events,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// LoginResponse 登录响应
type LoginResponse struct {
	User *user.Claims `json:"user"`
}

// LoggedInEvent user.logged_in事件载荷
type LoggedInEvent struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	SessionID string    `json:"sessionId"`
	At        time.Time `json:"at"`
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, sess *session.Session, cred *user.Credentials) (*LoginResponse, error) {
	// 1. 表单校验
	if err := validator.Struct(cred); err != nil {
		return nil, err
	}

	// 2. 远程登录
	token, err := uc.gateway.Login(ctx, cred)
	if err != nil {
		metrics.IncCounterVec(metrics.LoginsTotal, "rejected")
		return nil, err
	}

	// 3. 解码令牌
	claims, err := uc.decoder.Decode(token)
	if err != nil {
		metrics.IncCounterVec(metrics.LoginsTotal, "invalid_token")
		uc.logger.Warn("access token decode failed", zap.Error(err))
		return nil, user.ErrInvalidToken.WithCause(err)
	}
	identity := toIdentity(claims)

	// 4. 换新ID写入会话，再删除旧ID
	previousID := sess.ID
	next := *sess
	next.ID = uc.newID()
	next.SignIn(token, identity)
	next.Touch(uc.now())
	if err := uc.sessions.Save(ctx, &next); err != nil {
		return nil, err
	}
	if err := uc.sessions.Delete(ctx, previousID); err != nil {
		uc.logger.Warn("delete pre-login session failed",
			zap.String("session_id", previousID),
			zap.Error(err),
		)
	}
	*sess = next

	metrics.IncCounterVec(metrics.LoginsTotal, "success")
	uc.logger.Info("user logged in",
		zap.String("user_id", identity.ID),
		zap.String("session_id", sess.ID),
	)

	event := LoggedInEvent{
		UserID:    identity.ID,
		Email:     identity.Email,
		Role:      identity.Role,
		SessionID: sess.ID,
		At:        uc.now(),
	}
	if err := uc.events.Publish(ctx, mq.RoutingUserLoggedIn, event); err != nil {
		uc.logger.Warn("publish login event failed", zap.Error(err))
	}

	return &LoginResponse{User: identity}, nil
}

// toIdentity 令牌载荷转会话身份
func toIdentity(c *jwt.Claims) *user.Claims {
	return &user.Claims{
		ID:        c.ID,
		Email:     c.Email,
		Role:      c.Role,
		IssuedAt:  c.IssuedTime(),
		ExpiresAt: c.ExpiresTime(),
	}
}
