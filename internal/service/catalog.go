package service

import (
	"context"
	"math/rand/v2"

	"github.com/hashicorp/go-hclog"
	"github.com/user/animedex/internal/model"
	"github.com/user/animedex/internal/utils"
)

// TopAiringLimit 首页热播榜展示条数
const TopAiringLimit = 8

const (
	cacheKeyTopAiring = "panel:top_airing"
	cacheKeyTopScored = "panel:top_scored"
)

// Catalog 首页目录：搜索、热播榜、推荐位
type Catalog struct {
	source CatalogSource
	cache  *utils.PanelCache
	logger hclog.Logger
	pick   func(n int) int
}

// NewCatalog 创建目录服务
func NewCatalog(source CatalogSource, cache *utils.PanelCache, logger hclog.Logger) *Catalog {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Catalog{
		source: source,
		cache:  cache,
		logger: logger,
		pick:   rand.IntN,
	}
}

// Search 搜索并按 (mal_id, title) 去重，保持首次出现的顺序
func (c *Catalog) Search(ctx context.Context, query string) ([]model.Anime, error) {
	items, err := c.source.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return Dedupe(items), nil
}

// TopAiring 热播榜，去重后取前 TopAiringLimit 条
func (c *Catalog) TopAiring(ctx context.Context) []model.Anime {
	if v, ok := c.cache.Get(cacheKeyTopAiring); ok {
		return v.([]model.Anime)
	}

	items, err := c.source.TopAiring(ctx)
	if err != nil {
		c.logger.Warn("获取热播榜失败", "error", err)
		return []model.Anime{}
	}
	items = Dedupe(items)
	if len(items) > TopAiringLimit {
		items = items[:TopAiringLimit]
	}
	c.cache.Set(cacheKeyTopAiring, items)
	return items
}

// Featured 从高分列表中随机挑一部作为首页推荐，列表为空返回 nil
func (c *Catalog) Featured(ctx context.Context) *model.Anime {
	var items []model.Anime
	if v, ok := c.cache.Get(cacheKeyTopScored); ok {
		items = v.([]model.Anime)
	} else {
		fetched, err := c.source.TopScored(ctx)
		if err != nil {
			c.logger.Warn("获取推荐位失败", "error", err)
			return nil
		}
		items = fetched
		c.cache.Set(cacheKeyTopScored, items)
	}

	if len(items) == 0 {
		return nil
	}
	featured := items[c.pick(len(items))]
	return &featured
}

// Dedupe 按 (mal_id, title) 去重，首次出现者保留位置与内容
func Dedupe(items []model.Anime) []model.Anime {
	seen := make(map[model.SummaryKey]struct{}, len(items))
	out := make([]model.Anime, 0, len(items))
	for i := range items {
		key := items[i].Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, items[i])
	}
	return out
}
