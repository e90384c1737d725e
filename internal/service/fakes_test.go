package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/user/animedex/internal/model"
)

var errUpstream = errors.New("upstream down")

// fakeAnimeSource 内存版主数据源
type fakeAnimeSource struct {
	mu         sync.Mutex
	anime      map[int]*model.Anime
	characters map[int][]model.CastEntry
	staff      map[int][]model.StaffEntry
	reviews    map[int][]model.Review
	failAll    bool

	// gates 非空时 Anime(id) 会先通知 started 再等待放行，等待期间 ctx 取消则返回错误
	gates   map[int]chan struct{}
	started chan int

	animeCalls atomic.Int32
}

func newFakeAnimeSource() *fakeAnimeSource {
	return &fakeAnimeSource{
		anime:      map[int]*model.Anime{},
		characters: map[int][]model.CastEntry{},
		staff:      map[int][]model.StaffEntry{},
		reviews:    map[int][]model.Review{},
		gates:      map[int]chan struct{}{},
		started:    make(chan int, 8),
	}
}

func (f *fakeAnimeSource) Anime(ctx context.Context, id int) (*model.Anime, error) {
	f.animeCalls.Add(1)
	f.mu.Lock()
	gate := f.gates[id]
	f.mu.Unlock()
	if gate != nil {
		f.started <- id
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.failAll {
		return nil, errUpstream
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.anime[id], nil
}

func (f *fakeAnimeSource) Characters(ctx context.Context, id int) ([]model.CastEntry, error) {
	if f.failAll {
		return nil, errUpstream
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.characters[id], nil
}

func (f *fakeAnimeSource) Staff(ctx context.Context, id int) ([]model.StaffEntry, error) {
	if f.failAll {
		return nil, errUpstream
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.staff[id], nil
}

func (f *fakeAnimeSource) Reviews(ctx context.Context, id int) ([]model.Review, error) {
	if f.failAll {
		return nil, errUpstream
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reviews[id], nil
}

// fakeStreamingSource 内存版 AniList
type fakeStreamingSource struct {
	ids        map[int]int
	episodes   map[int][]model.StreamingEpisode
	resolveErr error

	resolveCalls   atomic.Int32
	streamingCalls atomic.Int32
}

func (f *fakeStreamingSource) ResolveID(ctx context.Context, malID int) (int, error) {
	f.resolveCalls.Add(1)
	if f.resolveErr != nil {
		return 0, f.resolveErr
	}
	return f.ids[malID], nil
}

func (f *fakeStreamingSource) StreamingEpisodes(ctx context.Context, id int) ([]model.StreamingEpisode, error) {
	f.streamingCalls.Add(1)
	return f.episodes[id], nil
}

// fakeCatalogSource 内存版搜索/榜单
type fakeCatalogSource struct {
	search    []model.Anime
	airing    []model.Anime
	scored    []model.Anime
	err       error
	calls     atomic.Int32
	lastQuery string
}

func (f *fakeCatalogSource) Search(ctx context.Context, query string) ([]model.Anime, error) {
	f.calls.Add(1)
	f.lastQuery = query
	return f.search, f.err
}

func (f *fakeCatalogSource) TopAiring(ctx context.Context) ([]model.Anime, error) {
	f.calls.Add(1)
	return f.airing, f.err
}

func (f *fakeCatalogSource) TopScored(ctx context.Context) ([]model.Anime, error) {
	f.calls.Add(1)
	return f.scored, f.err
}
