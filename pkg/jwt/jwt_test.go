package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

func TestDecoder_Decode(t *testing.T) {
	signer := NewSigner("upstream-secret", time.Hour)
	token, err := signer.Sign("u1", "reader@librant.dev", "user")
	require.NoError(t, err)

	claims, err := NewDecoder().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.ID)
	assert.Equal(t, "reader@librant.dev", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresTime(), 5*time.Second)
	assert.False(t, claims.IssuedTime().IsZero())
}

func TestDecoder_DoesNotVerifySignature(t *testing.T) {
	// 用任意密钥签发的令牌都能解出载荷
	token, err := NewSigner("some-other-secret", time.Hour).Sign("u2", "x@y.z", "admin")
	require.NoError(t, err)

	claims, err := NewDecoder().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestDecoder_Invalid(t *testing.T) {
	d := NewDecoder()

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := d.Decode(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken, token)
	}

	// 载荷中没有身份信息
	anon, err := NewSigner("s", time.Hour).Sign("", "", "user")
	require.NoError(t, err)
	_, err = d.Decode(anon)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
