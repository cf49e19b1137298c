package librant

import (
	"context"
	"errors"
	"net/http"

	"github.com/xiebiao/librant-storefront/internal/domain/user"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

// authGateway 认证实现(远程API)
// 密码只做转发，令牌的签发和校验都在上游
type authGateway struct {
	client *Client
}

// NewAuthGateway 创建认证网关
func NewAuthGateway(client *Client) user.AuthGateway {
	return &authGateway{client: client}
}

type loginPayload struct {
	AccessToken string `json:"accessToken"`
}

// Login 登录，返回访问令牌
// 上游拒绝（4xx或success=false）统一转为ErrLoginFailed，保留上游提示
func (g *authGateway) Login(ctx context.Context, cred *user.Credentials) (string, error) {
	var payload loginPayload
	err := g.client.do(ctx, call{
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     cred,
		endpoint: "/auth/login",
	}, &payload)
	if err != nil {
		return "", rejected(err, user.ErrLoginFailed)
	}
	if payload.AccessToken == "" {
		return "", user.ErrInvalidToken
	}
	return payload.AccessToken, nil
}

// Register 注册
func (g *authGateway) Register(ctx context.Context, reg *user.Registration) error {
	return g.client.do(ctx, call{
		method:   http.MethodPost,
		path:     "/auth/register",
		body:     reg,
		endpoint: "/auth/register",
	}, nil)
}

// ChangePassword 修改密码
func (g *authGateway) ChangePassword(ctx context.Context, req *user.PasswordChange) error {
	return g.client.do(ctx, call{
		method:   http.MethodPost,
		path:     "/auth/change-password",
		body:     req,
		endpoint: "/auth/change-password",
	}, nil)
}

// rejected 把上游的业务拒绝换成指定错误（有上游提示时沿用），上游不可用的错误原样返回
func rejected(err error, as *apperrors.AppError) error {
	var r *rejection
	if !errors.As(err, &r) {
		return err
	}
	if r.Message != "" {
		return as.WithMessage(r.Message).WithCause(err)
	}
	return as.WithCause(err)
}
