package cart

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/librant-storefront/internal/domain/book"
	"github.com/xiebiao/librant-storefront/internal/domain/cart"
	"github.com/xiebiao/librant-storefront/internal/domain/session"
	"github.com/xiebiao/librant-storefront/internal/domain/user"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
	"github.com/xiebiao/librant-storefront/pkg/metrics"
)

// SyncMode 购物车同步模式
type SyncMode string

const (
	// SyncLocal 购物车只保存在会话里（默认）
	SyncLocal SyncMode = "local"
	// SyncRemote 每次修改都调用远程购物车接口，以服务端返回为准
	SyncRemote SyncMode = "remote"
)

// CartView 购物车展示数据
// Stale表示本次远程调用的结果已被更新的同步取代，返回的是最新状态；
// 被取代的调用失败时StaleError带上它自己的错误信息
type CartView struct {
	cart.State
	Count      int    `json:"count"`
	Stale      bool   `json:"stale,omitempty"`
	StaleError string `json:"staleError,omitempty"`
}

// NewCartView 由状态快照生成展示数据
func NewCartView(st cart.State) *CartView {
	if st.Items == nil {
		st.Items = []cart.LineItem{}
	}
	return &CartView{State: st, Count: st.Count()}
}

// CartUseCase 购物车用例
// 设计说明:
//  1. 每次请求从会话恢复一个cart.Store，订阅它的变更把快照写回会话，最后保存会话
//  2. local模式：加入商品时从目录取标题、价格、图片，价格以目录为准
//  3. remote模式：先调用远程接口，再用返回的完整购物车整体替换本地状态；
//     发起前保存递增的同步代号，返回后重新读取会话，代号已被更新的请求超越时丢弃本次结果
type CartUseCase struct {
	sessions session.Repository
	books    book.Repository
	remote   cart.RemoteCart
	mode     SyncMode
	logger   *zap.Logger
	now      func() time.Time
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(
	sessions session.Repository,
	books book.Repository,
	remote cart.RemoteCart,
	mode SyncMode,
	logger *zap.Logger,
) *CartUseCase {
	if mode == "" {
		mode = SyncLocal
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartUseCase{
		sessions: sessions,
		books:    books,
		remote:   remote,
		mode:     mode,
		logger:   logger,
		now:      time.Now,
	}
}

// Mode 当前同步模式
func (uc *CartUseCase) Mode() SyncMode {
	return uc.mode
}

// View 查看购物车
func (uc *CartUseCase) View(sess *session.Session) *CartView {
	return NewCartView(sess.Cart)
}

// AddItemRequest 加入购物车请求
type AddItemRequest struct {
	BookID   string
	Quantity int // 0按1处理
}

// AddItem 加入购物车
func (uc *CartUseCase) AddItem(ctx context.Context, sess *session.Session, req AddItemRequest) (*CartView, error) {
	bookID := strings.TrimSpace(req.BookID)
	if bookID == "" {
		return nil, cart.ErrMissingIdentity
	}
	if req.Quantity < 0 || req.Quantity > cart.MaxQuantity {
		return nil, cart.ErrInvalidQuantity
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	if uc.mode == SyncRemote {
		return uc.exchange(ctx, sess, "add", func(ctx context.Context) ([]cart.LineItem, error) {
			return uc.remote.Add(ctx, bookID, qty)
		})
	}

	// local：价格、标题、图片以目录为准
	b, err := uc.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	price := b.Price
	item := cart.LineItem{
		BookID:     b.ID,
		Title:      b.Title,
		Image:      b.Image,
		UnitPrice:  &price,
		Quantity:   qty,
		TotalPrice: price.Mul(decimal.NewFromInt(int64(qty))),
	}
	return uc.apply(ctx, sess, "add", func(st *cart.Store) error {
		return st.AddItem(item)
	})
}

// UpdateQuantity 修改数量，找不到条目时不做任何事
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, sess *session.Session, id string, quantity int) (*CartView, error) {
	if quantity < 0 || quantity > cart.MaxQuantity {
		return nil, cart.ErrInvalidQuantity
	}
	ref := cart.AnyRef(strings.TrimSpace(id))
	if ref.IsZero() {
		return nil, cart.ErrMissingIdentity
	}

	if uc.mode == SyncRemote {
		remoteID := remoteItemID(sess.Cart, ref)
		return uc.exchange(ctx, sess, "update", func(ctx context.Context) ([]cart.LineItem, error) {
			return uc.remote.Update(ctx, remoteID, quantity)
		})
	}

	return uc.apply(ctx, sess, "update", func(st *cart.Store) error {
		_, err := st.UpdateQuantity(ref, quantity)
		return err
	})
}

// RemoveItem 删除条目（任一键匹配即删除）
func (uc *CartUseCase) RemoveItem(ctx context.Context, sess *session.Session, id string) (*CartView, error) {
	ref := cart.AnyRef(strings.TrimSpace(id))
	if ref.IsZero() {
		return nil, cart.ErrMissingIdentity
	}

	if uc.mode == SyncRemote {
		remoteID := remoteItemID(sess.Cart, ref)
		return uc.exchange(ctx, sess, "remove", func(ctx context.Context) ([]cart.LineItem, error) {
			return uc.remote.Remove(ctx, remoteID)
		})
	}

	return uc.apply(ctx, sess, "remove", func(st *cart.Store) error {
		st.RemoveItem(ref)
		return nil
	})
}

// Clear 清空购物车
func (uc *CartUseCase) Clear(ctx context.Context, sess *session.Session) (*CartView, error) {
	if uc.mode == SyncRemote {
		return uc.exchange(ctx, sess, "clear", func(ctx context.Context) ([]cart.LineItem, error) {
			if err := uc.remote.Clear(ctx); err != nil {
				return nil, err
			}
			return []cart.LineItem{}, nil
		})
	}

	return uc.apply(ctx, sess, "clear", func(st *cart.Store) error {
		st.Clear()
		return nil
	})
}

// Sync 拉取服务端购物车并整体替换本地状态（两种模式都可用，需要登录）
func (uc *CartUseCase) Sync(ctx context.Context, sess *session.Session) (*CartView, error) {
	return uc.exchange(ctx, sess, "sync", uc.remote.Fetch)
}

// apply 在本地Store上执行修改并保存会话
func (uc *CartUseCase) apply(ctx context.Context, sess *session.Session, action string, fn func(st *cart.Store) error) (*CartView, error) {
	st := cart.NewStoreFrom(sess.Cart)
	changed := false
	unsubscribe := st.Subscribe(func(s cart.State) {
		sess.Cart = s
		changed = true
	})
	defer unsubscribe()

	if err := fn(st); err != nil {
		return nil, err
	}

	if changed {
		sess.Touch(uc.now())
		if err := uc.sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		metrics.IncCounterVec(metrics.CartMutationsTotal, action)
	}
	return NewCartView(sess.Cart), nil
}

// exchange 调用远程购物车并应用结果
//
// 步骤：
// 1. BeginSync拿到新代号（loading=true），立即保存会话
// 2. 带着登录令牌调用上游
// 3. 重新读取会话：期间有更新的同步发起过，本次结果（成功或失败）都丢弃
// 4. 成功用服务端条目整体替换；失败保留条目并记录错误信息
func (uc *CartUseCase) exchange(
	ctx context.Context,
	sess *session.Session,
	action string,
	call func(ctx context.Context) ([]cart.LineItem, error),
) (*CartView, error) {
	if sess.Token == "" {
		return nil, user.ErrUnauthorized
	}

	// 1. 标记同步开始
	st := cart.NewStoreFrom(sess.Cart)
	gen := st.BeginSync()
	sess.Cart = st.Snapshot()
	sess.Touch(uc.now())
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	// 2. 调用上游
	items, callErr := call(user.ContextWithToken(ctx, sess.Token))

	// 3. 以最新会话为基准应用结果
	latest, err := uc.sessions.Get(ctx, sess.ID)
	switch {
	case err == nil:
		*sess = *latest
	case errors.Is(err, session.ErrSessionNotFound):
		// 调用期间会话过期，沿用本地副本
	default:
		return nil, err
	}

	st = cart.NewStoreFrom(sess.Cart)
	var applied bool
	if callErr != nil {
		applied = st.FailSync(gen, syncErrorMessage(callErr))
	} else {
		applied = st.ApplySync(gen, items)
	}

	if !applied {
		metrics.IncCounterVec(metrics.StaleResponsesTotal, "cart_sync")
		uc.logger.Debug("stale cart sync result discarded",
			zap.String("action", action),
			zap.Uint64("generation", gen),
			zap.Uint64("latest", sess.Cart.SyncGeneration),
		)
		view := NewCartView(sess.Cart)
		view.Stale = true
		if callErr != nil {
			view.StaleError = syncErrorMessage(callErr)
		}
		return view, nil
	}

	// 4. 保存
	sess.Cart = st.Snapshot()
	sess.Touch(uc.now())
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	if callErr != nil {
		return nil, callErr
	}

	metrics.IncCounterVec(metrics.CartMutationsTotal, action)
	return NewCartView(sess.Cart), nil
}

// remoteItemID 远程接口按条目_id操作；本地有匹配条目且带_id时用它，否则原样使用
func remoteItemID(st cart.State, ref cart.Identity) string {
	for _, it := range st.Items {
		if it.Matches(ref) && it.RecordID != "" {
			return it.RecordID
		}
	}
	return ref.ID
}

// syncErrorMessage 上游给出业务原因时沿用，否则用默认提示
func syncErrorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeBusinessError && appErr.Message != "" {
		return appErr.Message
	}
	return cart.DefaultSyncError
}
