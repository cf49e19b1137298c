package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

// Claims 远程API签发的访问令牌载荷
// 学习要点：
// 1. 嵌入jwt.RegisteredClaims获取标准字段（exp、iat等）
// 2. 自定义字段与上游保持一致：id、email、role
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ExpiresTime 过期时间（没有exp时为零值）
func (c *Claims) ExpiresTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// IssuedTime 签发时间（没有iat时为零值）
func (c *Claims) IssuedTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// Decoder 令牌解码器
// 设计说明：
// 1. 只解析载荷，不校验签名（密钥在远程API手里，签名校验是它的职责）
// 2. 解出的身份只用于展示和路由控制，真正的鉴权在上游每次请求时完成
// 3. 格式错误、载荷缺少id/email时视为无效令牌
type Decoder struct {
	parser *jwt.Parser
}

// NewDecoder 创建解码器
func NewDecoder() *Decoder {
	return &Decoder{parser: jwt.NewParser()}
}

// Decode 解码访问令牌
func (d *Decoder) Decode(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrInvalidToken
	}

	claims := &Claims{}
	if _, _, err := d.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, apperrors.ErrInvalidToken.WithCause(err)
	}

	if claims.ID == "" && claims.Email == "" {
		return nil, apperrors.ErrInvalidToken.WithCause(errors.New("token payload has no identity"))
	}

	return claims, nil
}

// Signer HS256签名器
// 说明：本服务不签发令牌，仅在本地联调和测试时模拟上游签发
type Signer struct {
	secret []byte
	expire time.Duration
}

// NewSigner 创建签名器
func NewSigner(secret string, expire time.Duration) *Signer {
	return &Signer{secret: []byte(secret), expire: expire}
}

// Sign 签发令牌
func (s *Signer) Sign(id, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:    id,
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expire)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "签发Token失败")
	}
	return token, nil
}
