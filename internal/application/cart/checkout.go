package cart

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/librant-storefront/internal/domain/cart"
	"github.com/xiebiao/librant-storefront/internal/domain/order"
	"github.com/xiebiao/librant-storefront/internal/domain/session"
	"github.com/xiebiao/librant-storefront/internal/domain/user"
	"github.com/xiebiao/librant-storefront/pkg/metrics"
	"github.com/xiebiao/librant-storefront/pkg/mq"
	"github.com/xiebiao/librant-storefront/pkg/saga"
)

// DefaultCheckoutTimeout 结算整体超时
const DefaultCheckoutTimeout = 30 * time.Second

// CheckoutUseCase 结算用例
// 设计说明:
// 1. 必须登录，购物车不能为空
// 2. 用Saga串起多个远程步骤：创建订单 → 清空远程购物车(remote模式) → 记录订单并清空本地购物车
// 3. 后续步骤失败时取消刚创建的订单
// 4. 成功后发布checkout.completed事件，发布失败只记日志
type CheckoutUseCase struct {
	sessions session.Repository
	orders   order.Repository
	remote   cart.RemoteCart
	mode     SyncMode
	events   mq.EventPublisher
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewCheckoutUseCase 创建结算用例
func NewCheckoutUseCase(
	sessions session.Repository,
	orders order.Repository,
	remote cart.RemoteCart,
	mode SyncMode,
	events mq.EventPublisher,
	logger *zap.Logger,
) *CheckoutUseCase {
	if mode == "" {
		mode = SyncLocal
	}
	if events == nil {
		events = mq.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutUseCase{
		sessions: sessions,
		orders:   orders,
		remote:   remote,
		mode:     mode,
		events:   events,
		timeout:  DefaultCheckoutTimeout,
		logger:   logger,
		now:      time.Now,
	}
}

// CheckoutResponse 结算结果
type CheckoutResponse struct {
	OrderID    string       `json:"orderId"`
	Reference  string       `json:"reference"`
	PaymentURL string       `json:"paymentUrl,omitempty"`
	Order      *order.Order `json:"order"`
	Cart       *CartView    `json:"cart"`
}

// CheckoutCompletedEvent checkout.completed事件载荷
type CheckoutCompletedEvent struct {
	OrderID     string          `json:"orderId"`
	Reference   string          `json:"reference"`
	SessionID   string          `json:"sessionId"`
	UserID      string          `json:"userId,omitempty"`
	Email       string          `json:"email,omitempty"`
	ItemCount   int             `json:"itemCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CompletedAt time.Time       `json:"completedAt"`
}

// Execute 执行结算
func (uc *CheckoutUseCase) Execute(ctx context.Context, sess *session.Session) (*CheckoutResponse, error) {
	start := uc.now()

	// 1. 前置校验
	if !sess.Authenticated(start) {
		return nil, user.ErrUnauthorized
	}
	products := orderProducts(sess.Cart.Items)
	if len(products) == 0 {
		return nil, cart.ErrEmptyCart
	}
	snapshot := sess.Cart
	token := sess.Token
	ctx = user.ContextWithToken(ctx, token)

	// 2. 组装Saga
	var created *order.Order
	s := saga.NewSaga(uc.timeout, saga.WithName("checkout"), saga.WithLogger(uc.logger))

	s.AddStep("create-order",
		func(ctx context.Context) error {
			o, err := uc.orders.Create(ctx, &order.CreateRequest{Products: products})
			if err != nil {
				return err
			}
			created = o
			return nil
		},
		func(ctx context.Context) error {
			// 补偿在独立的context上运行，需要重新带上令牌
			_, err := uc.orders.Cancel(user.ContextWithToken(ctx, token), created.ID)
			return err
		},
	)

	if uc.mode == SyncRemote {
		s.AddStep("clear-remote-cart", uc.remote.Clear, nil)
	}

	s.AddStep("record-order", func(ctx context.Context) error {
		st := cart.NewStoreFrom(sess.Cart)
		st.MarkOrdered(created.Reference())
		st.Clear()

		next := *sess
		next.Cart = st.Snapshot()
		next.Touch(uc.now())
		if err := uc.sessions.Save(ctx, &next); err != nil {
			return err
		}
		*sess = next
		return nil
	}, nil)

	// 3. 执行
	if err := s.Execute(ctx); err != nil {
		metrics.IncCounterVec(metrics.CheckoutsTotal, "failure")
		uc.logger.Warn("checkout failed",
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.IncCounterVec(metrics.CheckoutsTotal, "success")
	metrics.ObserveSince(metrics.CheckoutDuration, start)

	// 4. 发布事件
	event := CheckoutCompletedEvent{
		OrderID:     created.ID,
		Reference:   created.Reference(),
		SessionID:   sess.ID,
		ItemCount:   snapshot.Count(),
		TotalAmount: snapshot.TotalAmount,
		CompletedAt: uc.now(),
	}
	if sess.User != nil {
		event.UserID = sess.User.ID
		event.Email = sess.User.Email
	}
	if err := uc.events.Publish(ctx, mq.RoutingCheckoutCompleted, event); err != nil {
		uc.logger.Warn("publish checkout event failed",
			zap.String("order_id", created.ID),
			zap.Error(err),
		)
	}

	return &CheckoutResponse{
		OrderID:    created.ID,
		Reference:  created.Reference(),
		PaymentURL: created.PaymentURL,
		Order:      created,
		Cart:       NewCartView(sess.Cart),
	}, nil
}

// orderProducts 购物车条目转订单商品行，跳过数量为0的条目
func orderProducts(items []cart.LineItem) []order.Product {
	products := make([]order.Product, 0, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		id := it.BookID
		if id == "" {
			id = it.ProductID
		}
		if id == "" {
			id = it.RecordID
		}
		products = append(products, order.Product{Product: id, Quantity: it.Quantity})
	}
	return products
}
