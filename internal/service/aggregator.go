package service

import (
	"context"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/user/animedex/internal/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// BaseData 详情页主数据：条目、角色、制作人员、评论
type BaseData struct {
	Anime      *model.Anime
	Characters []model.CastEntry
	Staff      []model.StaffEntry
	Reviews    []model.Review
}

// Aggregator 组装详情页视图
// 任何上游失败都降级为空数据，不向调用方返回错误
type Aggregator struct {
	anime     AnimeSource
	streaming StreamingSource
	logger    hclog.Logger
	sf        singleflight.Group
}

// NewAggregator 创建聚合器
func NewAggregator(anime AnimeSource, streaming StreamingSource, logger hclog.Logger) *Aggregator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Aggregator{
		anime:     anime,
		streaming: streaming,
		logger:    logger,
	}
}

// Load 一次性组装完整视图（无状态，供 JSON 接口使用）
func (a *Aggregator) Load(ctx context.Context, id int) model.DetailView {
	base := a.FetchBase(ctx, id)
	return model.DetailView{
		ID:         id,
		Anime:      base.Anime,
		Characters: base.Characters,
		Staff:      base.Staff,
		Reviews:    base.Reviews,
		Streaming:  a.FetchStreaming(ctx, base.Anime),
	}
}

// FetchBase 并发获取主数据四件套，相同 ID 的并发请求只打一次上游
// 共享请求与发起者的 ctx 解绑，只受 HTTP 超时约束；每个调用方只在自己的 ctx 取消时提前返回空数据
func (a *Aggregator) FetchBase(ctx context.Context, id int) BaseData {
	ch := a.sf.DoChan(strconv.Itoa(id), func() (interface{}, error) {
		return a.fetchBase(context.WithoutCancel(ctx), id), nil
	})
	select {
	case res := <-ch:
		return res.Val.(BaseData)
	case <-ctx.Done():
		a.logger.Debug("调用方已取消，放弃等待", "id", id, "error", ctx.Err())
		return emptyBase()
	}
}

func emptyBase() BaseData {
	return BaseData{
		Characters: []model.CastEntry{},
		Staff:      []model.StaffEntry{},
		Reviews:    []model.Review{},
	}
}

func (a *Aggregator) fetchBase(ctx context.Context, id int) BaseData {
	base := emptyBase()

	// 四个请求互不依赖，各自写入不同字段；失败只记录日志，不取消其他请求
	var g errgroup.Group
	g.Go(func() error {
		anime, err := a.anime.Anime(ctx, id)
		if err != nil {
			a.logger.Warn("获取番剧详情失败", "id", id, "error", err)
			return nil
		}
		base.Anime = anime
		return nil
	})
	g.Go(func() error {
		chars, err := a.anime.Characters(ctx, id)
		if err != nil {
			a.logger.Debug("获取角色失败", "id", id, "error", err)
			return nil
		}
		base.Characters = orEmpty(chars)
		return nil
	})
	g.Go(func() error {
		staff, err := a.anime.Staff(ctx, id)
		if err != nil {
			a.logger.Debug("获取制作人员失败", "id", id, "error", err)
			return nil
		}
		base.Staff = orEmpty(staff)
		return nil
	})
	g.Go(func() error {
		reviews, err := a.anime.Reviews(ctx, id)
		if err != nil {
			a.logger.Debug("获取评论失败", "id", id, "error", err)
			return nil
		}
		base.Reviews = orEmpty(reviews)
		return nil
	})
	_ = g.Wait()

	if base.Anime == nil {
		a.logger.Info("主条目缺失，展示骨架屏", "id", id)
	}
	return base
}

// FetchStreaming 通过 MAL ID 交叉查询 AniList 流媒体剧集
// 条目缺失、没有 MAL ID、或 AniList 查不到时返回空列表
func (a *Aggregator) FetchStreaming(ctx context.Context, anime *model.Anime) []model.StreamingEpisode {
	empty := []model.StreamingEpisode{}
	if anime == nil || anime.MalID == 0 {
		return empty
	}

	aniListID, err := a.streaming.ResolveID(ctx, anime.MalID)
	if err != nil {
		a.logger.Debug("AniList ID 查询失败", "mal_id", anime.MalID, "error", err)
		return empty
	}
	if aniListID == 0 {
		return empty
	}

	episodes, err := a.streaming.StreamingEpisodes(ctx, aniListID)
	if err != nil {
		a.logger.Debug("获取流媒体剧集失败", "anilist_id", aniListID, "error", err)
		return empty
	}
	return orEmpty(episodes)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
