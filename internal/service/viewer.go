package service

import (
	"context"
	"sync"
	"time"

	"github.com/user/animedex/internal/model"
	"github.com/user/animedex/internal/utils"
)

// Viewer 单个访客的详情页状态
// 每次 Navigate 分配新的代数，提交时代数不一致说明已被更新的导航取代，直接丢弃
type Viewer struct {
	agg *Aggregator

	mu    sync.RWMutex
	gen   uint64
	state model.DetailView
}

// NewViewer 创建访客状态
func NewViewer(agg *Aggregator) *Viewer {
	return &Viewer{agg: agg}
}

// Navigate 加载指定番剧并提交到状态
// 返回本次导航自己组装的视图，以及它是否仍是当前导航（未被取代）
func (v *Viewer) Navigate(ctx context.Context, id int) (model.DetailView, bool) {
	gen := v.begin(id)

	base := v.agg.FetchBase(ctx, id)
	view := model.DetailView{
		ID:         id,
		Anime:      base.Anime,
		Characters: base.Characters,
		Staff:      base.Staff,
		Reviews:    base.Reviews,
		Streaming:  []model.StreamingEpisode{},
		Loading:    true,
	}
	if !v.commit(gen, func(s *model.DetailView) {
		s.Anime = view.Anime
		s.Characters = view.Characters
		s.Staff = view.Staff
		s.Reviews = view.Reviews
	}) {
		view.Loading = false
		return view, false
	}

	if view.Anime != nil {
		view.Streaming = v.agg.FetchStreaming(ctx, view.Anime)
	}
	view.Loading = false
	current := v.commit(gen, func(s *model.DetailView) {
		s.Streaming = view.Streaming
		s.Loading = false
	})
	return view, current
}

// Snapshot 返回当前状态的副本
func (v *Viewer) Snapshot() model.DetailView {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Holds 状态是否为 id 的一次已完成加载
func (v *Viewer) Holds(id int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.gen > 0 && v.state.ID == id && !v.state.Loading
}

// Generation 当前导航代数
func (v *Viewer) Generation() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.gen
}

// begin 进入加载状态，整体替换旧状态
func (v *Viewer) begin(id int) uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.state = model.DetailView{
		ID:         id,
		Characters: []model.CastEntry{},
		Staff:      []model.StaffEntry{},
		Reviews:    []model.Review{},
		Streaming:  []model.StreamingEpisode{},
		Loading:    true,
	}
	return v.gen
}

func (v *Viewer) commit(gen uint64, apply func(s *model.DetailView)) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if gen != v.gen {
		return false
	}
	apply(&v.state)
	return true
}

// ViewerStore 按访客 ID 保存 Viewer，容量满或过期后淘汰
type ViewerStore struct {
	agg     *Aggregator
	viewers *utils.LRUCache[*Viewer]
}

// NewViewerStore 创建访客状态仓库
func NewViewerStore(agg *Aggregator, capacity int, ttl time.Duration) *ViewerStore {
	return &ViewerStore{
		agg:     agg,
		viewers: utils.NewLRUCache[*Viewer](capacity, ttl),
	}
}

// Get 获取访客状态，不存在时新建
func (s *ViewerStore) Get(visitorID string) *Viewer {
	return s.viewers.GetOrCreate(visitorID, func() *Viewer {
		return NewViewer(s.agg)
	})
}

// Len 当前访客数
func (s *ViewerStore) Len() int {
	return s.viewers.Len()
}

// Sweep 清理过期访客，返回清理数
func (s *ViewerStore) Sweep() int {
	return s.viewers.PurgeExpired()
}
