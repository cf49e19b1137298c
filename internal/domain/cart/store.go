package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Listener 状态变更订阅者，收到的是变更后的快照
type Listener func(State)

// Store 购物车状态容器
// 设计说明：
// 1. 所有修改只能通过Store的方法完成，每次修改后重算TotalAmount
// 2. 修改完成后按订阅顺序通知订阅者（在锁外调用，订阅者可以再读Store）
// 3. 同一会话的并发请求可能交错，用互斥锁保护状态
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	order     []int
	nextID    int
}

// NewStore 创建空购物车
func NewStore() *Store {
	return NewStoreFrom(State{})
}

// NewStoreFrom 从持久化的快照恢复购物车
func NewStoreFrom(s State) *Store {
	st := &Store{listeners: make(map[int]Listener)}
	st.state = s.clone()
	if st.state.Items == nil {
		st.state.Items = []LineItem{}
	}
	st.state.TotalAmount = sumTotals(st.state.Items)
	return st
}

// Subscribe 订阅状态变更，返回取消订阅函数
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Snapshot 返回当前状态的深拷贝
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Restore 整体替换为持久化的快照（重算总额并通知订阅者）
func (s *Store) Restore(state State) {
	s.mutate(func(st *State) bool {
		*st = state.clone()
		if st.Items == nil {
			st.Items = []LineItem{}
		}
		return true
	})
}

// mutate 在锁内执行修改，重算总额后通知订阅者
// fn返回false表示没有发生修改（不通知）
func (s *Store) mutate(fn func(st *State) bool) bool {
	s.mu.Lock()
	changed := fn(&s.state)
	if !changed {
		s.mu.Unlock()
		return false
	}
	s.state.TotalAmount = sumTotals(s.state.Items)
	snap := s.state.clone()
	listeners := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return true
}

// AddItem 加入购物车
// 已有相同商品时做增量合并（数量和小计累加），否则追加新条目
// 合并后数量超过MaxQuantity时拒绝，购物车不变
func (s *Store) AddItem(item LineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	incoming := item.clone()
	var err error
	s.mutate(func(st *State) bool {
		for i := range st.Items {
			if st.Items[i].SameAs(incoming) {
				if st.Items[i].Quantity > MaxQuantity-incoming.Quantity {
					err = ErrInvalidQuantity
					return false
				}
				st.Items[i].Quantity += incoming.Quantity
				st.Items[i].TotalPrice = st.Items[i].TotalPrice.Add(incoming.TotalPrice)
				return true
			}
		}
		st.Items = append(st.Items, incoming)
		return true
	})
	return err
}

// UpdateQuantity 修改数量
// 小计 = 原隐含单价（小计 ÷ 原数量）× 新数量
// 找不到条目时静默忽略，返回false
// 数量改为0时把隐含单价记到UnitPrice上，之后再改数量仍按原单价计算
func (s *Store) UpdateQuantity(ref Identity, quantity int) (bool, error) {
	if quantity < 0 || quantity > MaxQuantity {
		return false, ErrInvalidQuantity
	}
	found := s.mutate(func(st *State) bool {
		for i := range st.Items {
			if st.Items[i].Matches(ref) {
				unit := st.Items[i].ImpliedUnitPrice()
				if quantity == 0 && st.Items[i].UnitPrice == nil {
					st.Items[i].UnitPrice = &unit
				}
				st.Items[i].Quantity = quantity
				st.Items[i].TotalPrice = unit.Mul(decimal.NewFromInt(int64(quantity)))
				return true
			}
		}
		return false
	})
	return found, nil
}

// RemoveItem 删除所有与ref匹配的条目，返回是否删除了条目
func (s *Store) RemoveItem(ref Identity) bool {
	return s.mutate(func(st *State) bool {
		kept := st.Items[:0]
		removed := false
		for _, it := range st.Items {
			if it.Matches(ref) {
				removed = true
				continue
			}
			kept = append(kept, it)
		}
		st.Items = kept
		return removed
	})
}

// Clear 清空购物车
func (s *Store) Clear() {
	s.mutate(func(st *State) bool {
		st.Items = []LineItem{}
		return true
	})
}

// MarkOrdered 记录下单快照和订单号，不清空购物车
func (s *Store) MarkOrdered(orderRef string) {
	s.mutate(func(st *State) bool {
		st.OrderedItems = cloneItems(st.Items)
		st.OrderRef = orderRef
		return true
	})
}

// SetError 记录错误信息
func (s *Store) SetError(message string) {
	s.mutate(func(st *State) bool {
		st.Error = message
		return true
	})
}

// =========================================
// 远程同步
// =========================================
// 每次发起同步拿到一个递增的代号，只有最新代号的结果会被应用，
// 慢请求晚到时不会覆盖新状态

// BeginSync 标记同步开始（loading），返回本次同步代号
func (s *Store) BeginSync() uint64 {
	var gen uint64
	s.mutate(func(st *State) bool {
		st.SyncGeneration++
		gen = st.SyncGeneration
		st.Loading = true
		st.Error = ""
		return true
	})
	return gen
}

// ApplySync 用服务端条目整体替换本地条目
// 代号过期时丢弃结果并返回false
func (s *Store) ApplySync(gen uint64, items []LineItem) bool {
	return s.mutate(func(st *State) bool {
		if gen != st.SyncGeneration {
			return false
		}
		if items != nil {
			st.Items = cloneItems(items)
		}
		st.Loading = false
		st.Error = ""
		return true
	})
}

// FailSync 记录同步失败，条目保持不变
func (s *Store) FailSync(gen uint64, message string) bool {
	if message == "" {
		message = DefaultSyncError
	}
	return s.mutate(func(st *State) bool {
		if gen != st.SyncGeneration {
			return false
		}
		st.Loading = false
		st.Error = message
		return true
	})
}
