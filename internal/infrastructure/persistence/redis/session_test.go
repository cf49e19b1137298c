package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/librant-storefront/internal/domain/cart"
	"github.com/xiebiao/librant-storefront/internal/domain/session"
	"github.com/xiebiao/librant-storefront/internal/domain/user"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

type setCall struct {
	key string
	ttl time.Duration
}

type mockCmdable struct {
	data     map[string]string
	setCalls []setCall
	err      error
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.err != nil {
		return redis.NewStringResult("", m.err)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if m.err != nil {
		return redis.NewStatusResult("", m.err)
	}
	m.data[key] = fmt.Sprint(value)
	m.setCalls = append(m.setCalls, setCall{key: key, ttl: expiration})
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	mock := newMockCmdable()
	store := newSessionStore(mock, "", 2*time.Hour)
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	sess := session.New("sid-1", now)
	sess.SignIn("tok", &user.Claims{ID: "u1", Email: "a@b.co", Role: user.RoleUser})
	require.NoError(t, sess.Filters.Toggle("category-Fiction", true))
	require.NoError(t, sess.Filters.Toggle("range-10,50", true))
	sess.BumpFilters()

	price := decimal.NewFromInt(12)
	st := cart.NewStoreFrom(sess.Cart)
	require.NoError(t, st.AddItem(cart.LineItem{BookID: "b1", Title: "Dune", UnitPrice: &price, Quantity: 2, TotalPrice: decimal.NewFromInt(24)}))
	sess.Cart = st.Snapshot()

	require.NoError(t, store.Save(ctx, sess))
	require.Len(t, mock.setCalls, 1)
	assert.Equal(t, "storefront:session:sid-1", mock.setCalls[0].key)
	assert.Equal(t, 2*time.Hour, mock.setCalls[0].ttl)

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "u1", got.User.ID)
	assert.Equal(t, []string{"Fiction"}, got.Filters.List("category"))
	minPrice, _ := got.Filters.Scalar("minPrice")
	assert.Equal(t, "10", minPrice)
	assert.Equal(t, uint64(1), got.FilterGeneration)
	require.Len(t, got.Cart.Items, 1)
	assert.True(t, got.Cart.TotalAmount.Equal(decimal.NewFromInt(24)))
}

func TestSessionStore_NotFoundAndCorrupt(t *testing.T) {
	mock := newMockCmdable()
	store := newSessionStore(mock, "test:", time.Minute)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	mock.data["test:broken"] = "{not json"
	_, err = store.Get(ctx, "broken")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	mock := newMockCmdable()
	store := newSessionStore(mock, "", time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, session.New("sid", time.Now())))
	require.NoError(t, store.Delete(ctx, "sid"))

	_, err := store.Get(ctx, "sid")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSessionStore_BackendError(t *testing.T) {
	mock := newMockCmdable()
	mock.err = errors.New("connection refused")
	store := newSessionStore(mock, "", time.Minute)

	_, err := store.Get(context.Background(), "sid")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionError))

	err = store.Save(context.Background(), session.New("sid", time.Now()))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionError))
}
