package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/user/animedex/internal/model"
	"github.com/user/animedex/internal/utils"
)

// AnimeSource 番剧主数据源
type AnimeSource interface {
	Anime(ctx context.Context, id int) (*model.Anime, error)
	Characters(ctx context.Context, id int) ([]model.CastEntry, error)
	Staff(ctx context.Context, id int) ([]model.StaffEntry, error)
	Reviews(ctx context.Context, id int) ([]model.Review, error)
}

// CatalogSource 搜索与榜单数据源
type CatalogSource interface {
	Search(ctx context.Context, query string) ([]model.Anime, error)
	TopAiring(ctx context.Context) ([]model.Anime, error)
	TopScored(ctx context.Context) ([]model.Anime, error)
}

// JikanClient Jikan v4 REST 客户端
type JikanClient struct {
	baseURL string
	http    *utils.HTTPClient
	logger  hclog.Logger
}

// NewJikanClient 创建 Jikan 客户端
func NewJikanClient(baseURL string, client *utils.HTTPClient, logger hclog.Logger) *JikanClient {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &JikanClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
		logger:  logger,
	}
}

// Anime 获取番剧详情，data 缺失或形状不对时返回 nil
func (c *JikanClient) Anime(ctx context.Context, id int) (*model.Anime, error) {
	raw, err := c.fetch(ctx, fmt.Sprintf("/anime/%d", id))
	if err != nil {
		return nil, err
	}
	// 标识字段解析失败才视为缺失，其他字段类型不符只丢弃该字段
	return decodeObject[model.Anime](raw, c.logger, "mal_id", "title"), nil
}

// Characters 获取角色与声优
func (c *JikanClient) Characters(ctx context.Context, id int) ([]model.CastEntry, error) {
	raw, err := c.fetch(ctx, fmt.Sprintf("/anime/%d/characters", id))
	if err != nil {
		return nil, err
	}
	return decodeList[model.CastEntry](raw, c.logger), nil
}

// Staff 获取制作人员
func (c *JikanClient) Staff(ctx context.Context, id int) ([]model.StaffEntry, error) {
	raw, err := c.fetch(ctx, fmt.Sprintf("/anime/%d/staff", id))
	if err != nil {
		return nil, err
	}
	return decodeList[model.StaffEntry](raw, c.logger), nil
}

// Reviews 获取用户评论
func (c *JikanClient) Reviews(ctx context.Context, id int) ([]model.Review, error) {
	raw, err := c.fetch(ctx, fmt.Sprintf("/anime/%d/reviews", id))
	if err != nil {
		return nil, err
	}
	return decodeList[model.Review](raw, c.logger), nil
}

// Search 关键词搜索
func (c *JikanClient) Search(ctx context.Context, query string) ([]model.Anime, error) {
	raw, err := c.fetch(ctx, "/anime?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}
	return decodeList[model.Anime](raw, c.logger), nil
}

// TopAiring 正在热播榜
func (c *JikanClient) TopAiring(ctx context.Context) ([]model.Anime, error) {
	raw, err := c.fetch(ctx, "/top/anime?filter=airing")
	if err != nil {
		return nil, err
	}
	return decodeList[model.Anime](raw, c.logger), nil
}

// TopScored 按评分倒序
func (c *JikanClient) TopScored(ctx context.Context) ([]model.Anime, error) {
	raw, err := c.fetch(ctx, "/anime?order_by=score&sort=desc")
	if err != nil {
		return nil, err
	}
	return decodeList[model.Anime](raw, c.logger), nil
}

// fetch 取响应中的 data 字段
// 只有传输失败或响应体不是合法 JSON 才返回错误，外层形状不对按 data 缺失处理
func (c *JikanClient) fetch(ctx context.Context, path string) (json.RawMessage, error) {
	var body json.RawMessage
	if err := c.http.GetJSON(ctx, c.baseURL+path, &body); err != nil {
		return nil, fmt.Errorf("jikan %s: %w", path, err)
	}
	return jsonField(body, "data"), nil
}
