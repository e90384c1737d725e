package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/animedex/internal/model"
)

func TestAggregator_LoadFull(t *testing.T) {
	src := newFakeAnimeSource()
	src.anime[21] = &model.Anime{MalID: 21, Title: "One Piece"}
	src.characters[21] = []model.CastEntry{{Character: model.Character{Name: "Luffy"}, Role: "Main"}}
	src.staff[21] = []model.StaffEntry{{Person: model.Person{Name: "Oda"}, Positions: []string{"Original Creator"}}}
	src.reviews[21] = []model.Review{{MalID: 1, Tags: []string{"Recommended"}}}
	stream := &fakeStreamingSource{
		ids:      map[int]int{21: 21},
		episodes: map[int][]model.StreamingEpisode{21: {{Title: "Episode 1", URL: "https://example.com/1"}}},
	}

	view := NewAggregator(src, stream, nil).Load(context.Background(), 21)

	require.NotNil(t, view.Anime)
	assert.Equal(t, "One Piece", view.Anime.Title)
	assert.Len(t, view.Characters, 1)
	assert.Len(t, view.Staff, 1)
	assert.Len(t, view.Reviews, 1)
	assert.Len(t, view.Streaming, 1)
	assert.False(t, view.Loading)
}

func TestAggregator_NoCrossKeySkipsSecondary(t *testing.T) {
	src := newFakeAnimeSource()
	src.anime[5] = &model.Anime{MalID: 0, Title: "Keyless"}
	stream := &fakeStreamingSource{}

	view := NewAggregator(src, stream, nil).Load(context.Background(), 5)

	require.NotNil(t, view.Anime)
	assert.Empty(t, view.Streaming)
	assert.NotNil(t, view.Streaming)
	assert.Zero(t, stream.resolveCalls.Load())
	assert.Zero(t, stream.streamingCalls.Load())
}

func TestAggregator_UnresolvedIDSkipsStreamingFetch(t *testing.T) {
	src := newFakeAnimeSource()
	src.anime[7] = &model.Anime{MalID: 7, Title: "Obscure"}
	stream := &fakeStreamingSource{ids: map[int]int{}}

	view := NewAggregator(src, stream, nil).Load(context.Background(), 7)

	assert.Empty(t, view.Streaming)
	assert.EqualValues(t, 1, stream.resolveCalls.Load())
	assert.Zero(t, stream.streamingCalls.Load())
}

func TestAggregator_ResolveErrorDegradesToEmpty(t *testing.T) {
	src := newFakeAnimeSource()
	src.anime[7] = &model.Anime{MalID: 7}
	stream := &fakeStreamingSource{resolveErr: errUpstream}

	view := NewAggregator(src, stream, nil).Load(context.Background(), 7)

	assert.Empty(t, view.Streaming)
	assert.Zero(t, stream.streamingCalls.Load())
}

func TestAggregator_MissingPrimary(t *testing.T) {
	src := newFakeAnimeSource()
	stream := &fakeStreamingSource{}

	view := NewAggregator(src, stream, nil).Load(context.Background(), 404)

	assert.True(t, view.Missing())
	assert.Empty(t, view.Characters)
	assert.Zero(t, stream.resolveCalls.Load())
}

func TestAggregator_AllUpstreamsFail(t *testing.T) {
	src := newFakeAnimeSource()
	src.failAll = true

	base := NewAggregator(src, &fakeStreamingSource{}, nil).FetchBase(context.Background(), 1)

	assert.Nil(t, base.Anime)
	assert.NotNil(t, base.Characters)
	assert.NotNil(t, base.Staff)
	assert.NotNil(t, base.Reviews)
}

func TestAggregator_FetchBaseCollapsesConcurrentCalls(t *testing.T) {
	src := newFakeAnimeSource()
	src.anime[9] = &model.Anime{MalID: 9}
	gate := make(chan struct{})
	src.gates[9] = gate
	agg := NewAggregator(src, &fakeStreamingSource{}, nil)

	var wg sync.WaitGroup
	results := make([]BaseData, 3)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = agg.FetchBase(context.Background(), 9)
	}()
	<-src.started

	for i := 1; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = agg.FetchBase(context.Background(), 9)
		}(i)
	}
	close(gate)
	wg.Wait()

	// 后两个调用可能在首个调用结束前或后进入，至多各自再打一次
	assert.LessOrEqual(t, src.animeCalls.Load(), int32(3))
	for _, r := range results {
		require.NotNil(t, r.Anime)
		assert.Equal(t, 9, r.Anime.MalID)
	}
}

func TestAggregator_FetchBaseSurvivesFirstCallerCancel(t *testing.T) {
	src := newFakeAnimeSource()
	src.anime[7] = &model.Anime{MalID: 7, Title: "Shared"}
	gate := make(chan struct{})
	src.gates[7] = gate
	agg := NewAggregator(src, &fakeStreamingSource{}, nil)

	ctxA, cancelA := context.WithCancel(context.Background())
	doneA := make(chan BaseData, 1)
	go func() { doneA <- agg.FetchBase(ctxA, 7) }()
	<-src.started

	doneB := make(chan BaseData, 1)
	go func() { doneB <- agg.FetchBase(context.Background(), 7) }()

	// A 离开页面，只影响 A 自己
	cancelA()
	var a BaseData
	select {
	case a = <-doneA:
	case <-time.After(time.Second):
		t.Fatal("A 取消后未返回")
	}
	assert.Nil(t, a.Anime)
	assert.NotNil(t, a.Characters)

	close(gate)
	var b BaseData
	select {
	case b = <-doneB:
	case <-time.After(time.Second):
		t.Fatal("B 未返回")
	}
	require.NotNil(t, b.Anime)
	assert.Equal(t, "Shared", b.Anime.Title)
}
