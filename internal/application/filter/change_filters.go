package filter

import (
	"context"
	"time"

	"github.com/xiebiao/librant-storefront/internal/domain/filter"
	"github.com/xiebiao/librant-storefront/internal/domain/session"
	apperrors "github.com/xiebiao/librant-storefront/pkg/errors"
	"github.com/xiebiao/librant-storefront/pkg/metrics"
)

// 筛选变更类型
const (
	KindToggle = "toggle"
	KindSearch = "search"
	KindSort   = "sort"
	KindReset  = "reset"
)

// ChangeFiltersUseCase 修改筛选参数用例
// 设计说明:
// 1. 勾选/取消筛选项、搜索、排序、清空都走这里
// 2. 每次成功修改都递增会话的筛选代号，列表响应带回该代号
// 3. 修改失败（格式错误的筛选项、未知排序）时会话不变
type ChangeFiltersUseCase struct {
	sessions session.Repository
	now      func() time.Time
}

// NewChangeFiltersUseCase 创建筛选用例
func NewChangeFiltersUseCase(sessions session.Repository) *ChangeFiltersUseCase {
	return &ChangeFiltersUseCase{sessions: sessions, now: time.Now}
}

// ChangeFiltersRequest 筛选变更请求
type ChangeFiltersRequest struct {
	Kind    string
	Encoded string // toggle："<facet>-<value>"，如category-Fiction、range-0,100
	Checked bool   // toggle：勾选还是取消
	Term    string // search
	Option  string // sort：h-t-l | l-t-h
}

// FilterState 当前筛选状态
type FilterState struct {
	Filters    *filter.Params `json:"filters"`
	Query      string         `json:"query"`
	Generation uint64         `json:"generation"`
}

// Execute 执行筛选变更
func (uc *ChangeFiltersUseCase) Execute(ctx context.Context, sess *session.Session, req ChangeFiltersRequest) (*FilterState, error) {
	// 1. 在副本上修改，失败时会话保持原样
	next := sess.Filters.Clone()

	switch req.Kind {
	case KindToggle:
		if err := next.Toggle(req.Encoded, req.Checked); err != nil {
			return nil, err
		}
	case KindSearch:
		next.Search(req.Term)
	case KindSort:
		if err := next.Sort(req.Option); err != nil {
			return nil, err
		}
	case KindReset:
		next.Reset()
	default:
		return nil, apperrors.ErrInvalidParams.WithMessage("未知的筛选操作: " + req.Kind)
	}

	// 2. 替换并递增代号
	sess.Filters = next
	sess.BumpFilters()
	sess.Touch(uc.now())

	// 3. 保存会话
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	metrics.IncCounterVec(metrics.FilterChangesTotal, req.Kind)
	return CurrentState(sess), nil
}

// CurrentState 会话当前的筛选状态
func CurrentState(sess *session.Session) *FilterState {
	return &FilterState{
		Filters:    sess.Filters.Clone(),
		Query:      sess.Filters.Encode(),
		Generation: sess.FilterGeneration,
	}
}
