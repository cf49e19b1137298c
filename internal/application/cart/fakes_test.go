package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/librant-storefront/internal/domain/book"
	"github.com/xiebiao/librant-storefront/internal/domain/cart"
	"github.com/xiebiao/librant-storefront/internal/domain/order"
	"github.com/xiebiao/librant-storefront/internal/domain/user"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
)

// fakeBooks 只实现FindByID，其余方法不会被购物车用例调用
type fakeBooks struct {
	book.Repository
	books map[string]*book.Book
}

func (f *fakeBooks) FindByID(_ context.Context, id string) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func catalog() *fakeBooks {
	return &fakeBooks{books: map[string]*book.Book{
		"b1": {ID: "b1", Title: "Dune", Price: decimal.RequireFromString("10.50"), Image: "https://img/dune.jpg"},
		"b2": {ID: "b2", Title: "Emma", Price: decimal.RequireFromString("4")},
	}}
}

// fakeRemote 可编程的远程购物车，记录每次调用带的令牌
type fakeRemote struct {
	mu     sync.Mutex
	calls  []string
	tokens []string
	fetch  func(ctx context.Context) ([]cart.LineItem, error)
	add    func(ctx context.Context, bookID string, qty int) ([]cart.LineItem, error)
	update func(ctx context.Context, id string, qty int) ([]cart.LineItem, error)
	remove func(ctx context.Context, id string) ([]cart.LineItem, error)
	clear  func(ctx context.Context) error
}

func (f *fakeRemote) record(ctx context.Context, call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	f.tokens = append(f.tokens, user.TokenFromContext(ctx))
}

func (f *fakeRemote) Fetch(ctx context.Context) ([]cart.LineItem, error) {
	f.record(ctx, "fetch")
	return f.fetch(ctx)
}

func (f *fakeRemote) Add(ctx context.Context, bookID string, qty int) ([]cart.LineItem, error) {
	f.record(ctx, "add:"+bookID)
	return f.add(ctx, bookID, qty)
}

func (f *fakeRemote) Update(ctx context.Context, id string, qty int) ([]cart.LineItem, error) {
	f.record(ctx, "update:"+id)
	return f.update(ctx, id, qty)
}

func (f *fakeRemote) Remove(ctx context.Context, id string) ([]cart.LineItem, error) {
	f.record(ctx, "remove:"+id)
	return f.remove(ctx, id)
}

func (f *fakeRemote) Clear(ctx context.Context) error {
	f.record(ctx, "clear")
	if f.clear == nil {
		return nil
	}
	return f.clear(ctx)
}

// fakeOrders 可编程的订单接口
type fakeOrders struct {
	order.Repository
	created   []*order.CreateRequest
	cancelled []string
	cancelTok []string
	createErr error
}

func (f *fakeOrders) Create(ctx context.Context, req *order.CreateRequest) (*order.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	return &order.Order{
		ID:          "o-1",
		Status:      "pending",
		Transaction: &order.Transaction{ID: "TX-9"},
		PaymentURL:  "https://pay/o-1",
	}, nil
}

func (f *fakeOrders) Cancel(ctx context.Context, id string) (*order.Order, error) {
	f.cancelled = append(f.cancelled, id)
	f.cancelTok = append(f.cancelTok, user.TokenFromContext(ctx))
	return &order.Order{ID: id, Status: "cancelled"}, nil
}

var errUpstreamDown = apperrors.ErrUpstream.WithCause(context.DeadlineExceeded)
