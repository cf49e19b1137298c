package cart

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xiebiao/librant-storefront/internal/domain/cart"
	"github.com/xiebiao/librant-storefront/internal/domain/order"
	"github.com/xiebiao/librant-storefront/internal/domain/session"
	"github.com/xiebiao/librant-storefront/internal/domain/user"
	"github.com/xiebiao/librant-storefront/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
	"github.com/xiebiao/librant-storefront/pkg/mq"
)

func sessionWithItems(t *testing.T, store session.Repository, token string) *session.Session {
	t.Helper()
	sess := newSession(t, store, token)
	sess.Cart.Items = []cart.LineItem{
		{BookID: "b1", Title: "Dune", Quantity: 2, TotalPrice: decimal.NewFromInt(20)},
		{ProductID: "p9", Title: "Emma", Quantity: 1, TotalPrice: decimal.NewFromInt(4)},
		{BookID: "b0", Title: "Zero", Quantity: 0, TotalPrice: decimal.Zero},
	}
	sess.Cart.TotalAmount = decimal.NewFromInt(24)
	require.NoError(t, store.Save(context.Background(), sess))
	return sess
}

func TestCheckout_Success(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	orders := &fakeOrders{}
	events := mq.NewMemoryPublisher()
	uc := NewCheckoutUseCase(store, orders, &fakeRemote{}, SyncLocal, events, zaptest.NewLogger(t))
	sess := sessionWithItems(t, store, "tok")
	ctx := context.Background()

	resp, err := uc.Execute(ctx, sess)
	require.NoError(t, err)

	// 数量为0的条目不下单
	require.Len(t, orders.created, 1)
	assert.Equal(t, []order.Product{{Product: "b1", Quantity: 2}, {Product: "p9", Quantity: 1}}, orders.created[0].Products)

	assert.Equal(t, "o-1", resp.OrderID)
	assert.Equal(t, "TX-9", resp.Reference)
	assert.Equal(t, "https://pay/o-1", resp.PaymentURL)
	assert.Empty(t, resp.Cart.Items)
	assert.Equal(t, "TX-9", resp.Cart.OrderRef)
	assert.Len(t, resp.Cart.OrderedItems, 3)

	saved, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Empty(t, saved.Cart.Items)
	assert.True(t, saved.Cart.TotalAmount.IsZero())
	assert.Equal(t, "TX-9", saved.Cart.OrderRef)

	msgs := events.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, mq.RoutingCheckoutCompleted, msgs[0].RoutingKey)
	var event CheckoutCompletedEvent
	require.NoError(t, json.Unmarshal(msgs[0].Body, &event))
	assert.Equal(t, "o-1", event.OrderID)
	assert.Equal(t, "u1", event.UserID)
	assert.Equal(t, 3, event.ItemCount)
	assert.True(t, decimal.NewFromInt(24).Equal(event.TotalAmount))
}

func TestCheckout_Preconditions(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	orders := &fakeOrders{}
	uc := NewCheckoutUseCase(store, orders, nil, SyncLocal, nil, nil)
	ctx := context.Background()

	anonymous := sessionWithItems(t, store, "")
	_, err := uc.Execute(ctx, anonymous)
	assert.ErrorIs(t, err, user.ErrUnauthorized)

	empty := newSession(t, store, "tok")
	_, err = uc.Execute(ctx, empty)
	assert.ErrorIs(t, err, cart.ErrEmptyCart)
	assert.Empty(t, orders.created)
}

func TestCheckout_CreateOrderFailureLeavesCart(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	orders := &fakeOrders{createErr: apperrors.ErrBusiness.WithMessage("Insufficient stock")}
	events := mq.NewMemoryPublisher()
	uc := NewCheckoutUseCase(store, orders, nil, SyncLocal, events, nil)
	sess := sessionWithItems(t, store, "tok")

	_, err := uc.Execute(context.Background(), sess)
	require.Error(t, err)
	assert.Equal(t, "Insufficient stock", apperrors.GetAppError(err).Message)
	assert.Len(t, sess.Cart.Items, 3)
	assert.Empty(t, orders.cancelled)
	assert.Empty(t, events.Messages())
}

func TestCheckout_RemoteClearFailureCancelsOrder(t *testing.T) {
	store := memory.NewSessionStore(time.Hour)
	orders := &fakeOrders{}
	remote := &fakeRemote{clear: func(context.Context) error { return errUpstreamDown }}
	uc := NewCheckoutUseCase(store, orders, remote, SyncRemote, mq.NopPublisher{}, zaptest.NewLogger(t))
	sess := sessionWithItems(t, store, "tok")

	_, err := uc.Execute(context.Background(), sess)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)

	assert.Equal(t, []string{"o-1"}, orders.cancelled)
	assert.Equal(t, []string{"tok"}, orders.cancelTok)
	assert.Equal(t, []string{"tok"}, remote.tokens)

	saved, err := store.Get(context.Background(), "sid")
	require.NoError(t, err)
	assert.Len(t, saved.Cart.Items, 3)
	assert.Empty(t, saved.Cart.OrderRef)
}
