package cart

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xiebiao/librant-storefront/internal/domain/book"
	"github.com/xiebiao/librant-storefront/internal/domain/cart"
	"github.com/xiebiao/librant-storefront/internal/domain/session"
	"github.com/xiebiao/librant-storefront/internal/domain/user"
	"github.com/xiebiao/librant-storefront/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

func newSession(t *testing.T, store session.Repository, token string) *session.Session {
	t.Helper()
	sess := session.New("sid", time.Now())
	if token != "" {
		sess.SignIn(token, &user.Claims{ID: "u1", Email: "a@b.c", Role: user.RoleUser})
	}
	require.NoError(t, store.Save(context.Background(), sess))
	return sess
}

func TestCart_LocalAddUsesCatalogPrice(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	uc := NewCartUseCase(store, catalog(), nil, SyncLocal, zaptest.NewLogger(t))
	sess := newSession(t, store, "")
	ctx := context.Background()

	view, err := uc.AddItem(ctx, sess, AddItemRequest{BookID: "b1", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Dune", view.Items[0].Title)
	assert.True(t, decimal.RequireFromString("21").Equal(view.Items[0].TotalPrice))
	assert.True(t, decimal.RequireFromString("21").Equal(view.TotalAmount))
	assert.Equal(t, 2, view.Count)

	// 数量缺省为1，同一本书增量合并
	view, err = uc.AddItem(ctx, sess, AddItemRequest{BookID: "b1"})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("31.5").Equal(view.TotalAmount))

	saved, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, 3, saved.Cart.Count())
	assert.True(t, view.TotalAmount.Equal(saved.Cart.TotalAmount))
}

func TestCart_LocalAddRejectsBadInput(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	uc := NewCartUseCase(store, catalog(), nil, SyncLocal, nil)
	sess := newSession(t, store, "")
	ctx := context.Background()

	_, err := uc.AddItem(ctx, sess, AddItemRequest{BookID: " "})
	assert.ErrorIs(t, err, cart.ErrMissingIdentity)

	_, err = uc.AddItem(ctx, sess, AddItemRequest{BookID: "b1", Quantity: -1})
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	_, err = uc.AddItem(ctx, sess, AddItemRequest{BookID: "missing"})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.Empty(t, sess.Cart.Items)
}

func TestCart_LocalUpdateRemoveClear(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	uc := NewCartUseCase(store, catalog(), nil, SyncLocal, nil)
	sess := newSession(t, store, "")
	ctx := context.Background()

	_, err := uc.AddItem(ctx, sess, AddItemRequest{BookID: "b1", Quantity: 2})
	require.NoError(t, err)
	_, err = uc.AddItem(ctx, sess, AddItemRequest{BookID: "b2", Quantity: 1})
	require.NoError(t, err)

	view, err := uc.UpdateQuantity(ctx, sess, "b1", 4)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("46").Equal(view.TotalAmount))

	// 找不到条目时不做任何事
	view, err = uc.UpdateQuantity(ctx, sess, "nope", 9)
	require.NoError(t, err)
	assert.Equal(t, 5, view.Count)

	_, err = uc.UpdateQuantity(ctx, sess, "b1", -2)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	view, err = uc.RemoveItem(ctx, sess, "b2")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.True(t, decimal.RequireFromString("42").Equal(view.TotalAmount))

	view, err = uc.Clear(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.TotalAmount.IsZero())

	saved, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Empty(t, saved.Cart.Items)
}

func TestCart_RemoteRequiresLogin(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	remote := &fakeRemote{}
	uc := NewCartUseCase(store, catalog(), remote, SyncRemote, nil)
	sess := newSession(t, store, "")

	_, err := uc.AddItem(context.Background(), sess, AddItemRequest{BookID: "b1"})
	assert.ErrorIs(t, err, user.ErrUnauthorized)
	assert.Empty(t, remote.calls)
}

func TestCart_RemoteReplacesItemsWithServerCart(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	server := []cart.LineItem{
		{RecordID: "r1", BookID: "b1", Title: "Dune", Quantity: 3, TotalPrice: decimal.NewFromInt(30)},
	}
	remote := &fakeRemote{
		add: func(_ context.Context, bookID string, qty int) ([]cart.LineItem, error) {
			return server, nil
		},
		update: func(_ context.Context, id string, qty int) ([]cart.LineItem, error) {
			return []cart.LineItem{{RecordID: "r1", BookID: "b1", Quantity: qty, TotalPrice: decimal.NewFromInt(int64(10 * qty))}}, nil
		},
		remove: func(context.Context, string) ([]cart.LineItem, error) {
			return []cart.LineItem{}, nil
		},
	}
	uc := NewCartUseCase(store, catalog(), remote, SyncRemote, nil)
	sess := newSession(t, store, "tok")
	ctx := context.Background()

	view, err := uc.AddItem(ctx, sess, AddItemRequest{BookID: "b1", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, server[0].Quantity, view.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(30).Equal(view.TotalAmount))
	assert.False(t, view.Loading)
	assert.Empty(t, view.Error)

	// 远程操作按条目_id寻址
	view, err = uc.UpdateQuantity(ctx, sess, "b1", 1)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(view.TotalAmount))

	view, err = uc.RemoveItem(ctx, sess, "r1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	assert.Equal(t, []string{"add:b1", "update:r1", "remove:r1"}, remote.calls)
	assert.Equal(t, []string{"tok", "tok", "tok"}, remote.tokens)
}

func TestCart_RemoteFailureKeepsItemsAndRecordsError(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	remote := &fakeRemote{
		fetch: func(context.Context) ([]cart.LineItem, error) { return nil, errUpstreamDown },
		add: func(context.Context, string, int) ([]cart.LineItem, error) {
			return nil, apperrors.ErrBusiness.WithMessage("Out of stock")
		},
	}
	uc := NewCartUseCase(store, catalog(), remote, SyncRemote, nil)
	sess := newSession(t, store, "tok")
	sess.Cart.Items = []cart.LineItem{{BookID: "b2", Quantity: 1, TotalPrice: decimal.NewFromInt(4)}}
	sess.Cart.TotalAmount = decimal.NewFromInt(4)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sess))

	_, err := uc.Sync(ctx, sess)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Equal(t, cart.DefaultSyncError, sess.Cart.Error)
	assert.False(t, sess.Cart.Loading)
	assert.Len(t, sess.Cart.Items, 1)

	_, err = uc.AddItem(ctx, sess, AddItemRequest{BookID: "b1"})
	require.Error(t, err)
	assert.Equal(t, "Out of stock", sess.Cart.Error)

	saved, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "Out of stock", saved.Cart.Error)
	assert.Len(t, saved.Cart.Items, 1)
}

func TestCart_StaleSyncResultIsDiscarded(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	ctx := context.Background()

	older := []cart.LineItem{{BookID: "old", Quantity: 1, TotalPrice: decimal.NewFromInt(1)}}
	newer := []cart.LineItem{{BookID: "new", Quantity: 2, TotalPrice: decimal.NewFromInt(8)}}

	var uc *CartUseCase
	calls := 0
	remote := &fakeRemote{}
	remote.fetch = func(context.Context) ([]cart.LineItem, error) {
		calls++
		if calls == 1 {
			// 第一次同步尚未返回时，另一个请求发起并完成了更新的同步
			other, err := store.Get(ctx, "sid")
			require.NoError(t, err)
			_, err = uc.Sync(ctx, other)
			require.NoError(t, err)
			return older, nil
		}
		return newer, nil
	}
	uc = NewCartUseCase(store, catalog(), remote, SyncRemote, zaptest.NewLogger(t))
	sess := newSession(t, store, "tok")

	view, err := uc.Sync(ctx, sess)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "new", view.Items[0].BookID)
	assert.Equal(t, uint64(2), view.SyncGeneration)
	assert.True(t, view.Stale)
	assert.Empty(t, view.StaleError)

	saved, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "new", saved.Cart.Items[0].BookID)
	assert.False(t, saved.Cart.Loading)
}

func TestCart_StaleSyncFailureIsReported(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	ctx := context.Background()

	newer := []cart.LineItem{{BookID: "new", Quantity: 1, TotalPrice: decimal.NewFromInt(3)}}

	var uc *CartUseCase
	calls := 0
	remote := &fakeRemote{}
	remote.fetch = func(context.Context) ([]cart.LineItem, error) {
		calls++
		if calls == 1 {
			other, err := store.Get(ctx, "sid")
			require.NoError(t, err)
			fresh, err := uc.Sync(ctx, other)
			require.NoError(t, err)
			assert.False(t, fresh.Stale)
			return nil, errUpstreamDown
		}
		return newer, nil
	}
	uc = NewCartUseCase(store, catalog(), remote, SyncRemote, zaptest.NewLogger(t))
	sess := newSession(t, store, "tok")

	view, err := uc.Sync(ctx, sess)
	require.NoError(t, err)
	assert.True(t, view.Stale)
	assert.Equal(t, cart.DefaultSyncError, view.StaleError)
	assert.Empty(t, view.Error)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "new", view.Items[0].BookID)
}

func TestCart_RemoteClearEmptiesCart(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	remote := &fakeRemote{}
	uc := NewCartUseCase(store, catalog(), remote, SyncRemote, nil)
	sess := newSession(t, store, "tok")
	sess.Cart.Items = []cart.LineItem{{BookID: "b1", Quantity: 1, TotalPrice: decimal.NewFromInt(10)}}

	view, err := uc.Clear(context.Background(), sess)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.TotalAmount.IsZero())
	assert.Equal(t, []string{"clear"}, remote.calls)
}
