package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/user/animedex/internal/model"
	"github.com/user/animedex/internal/utils"
)

// StreamingSource 正版流媒体数据源，以 MAL ID 交叉查询
type StreamingSource interface {
	// ResolveID 通过 MAL ID 查询 AniList ID，查不到返回 0
	ResolveID(ctx context.Context, malID int) (int, error)
	StreamingEpisodes(ctx context.Context, id int) ([]model.StreamingEpisode, error)
}

const aniListIDQuery = `
query ($malId: Int) {
  Media(idMal: $malId, type: ANIME) {
    id
  }
}
`

const aniListStreamingQuery = `
query ($id: Int) {
  Media(id: $id, type: ANIME) {
    streamingEpisodes {
      title
      url
      thumbnail
    }
  }
}
`

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// AniListClient AniList GraphQL 客户端
type AniListClient struct {
	endpoint string
	http     *utils.HTTPClient
	logger   hclog.Logger
}

// NewAniListClient 创建 AniList 客户端
func NewAniListClient(endpoint string, client *utils.HTTPClient, logger hclog.Logger) *AniListClient {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &AniListClient{
		endpoint: endpoint,
		http:     client,
		logger:   logger,
	}
}

// ResolveID 通过 MAL ID 查询 AniList ID
func (c *AniListClient) ResolveID(ctx context.Context, malID int) (int, error) {
	var resp json.RawMessage
	req := graphQLRequest{
		Query:     aniListIDQuery,
		Variables: map[string]interface{}{"malId": malID},
	}
	if err := c.http.PostJSON(ctx, c.endpoint, req, &resp); err != nil {
		return 0, fmt.Errorf("anilist 查询 ID 失败: %w", err)
	}
	c.logErrors("resolve", resp)

	// data.Media 缺失、为 null 或 id 类型不符都视为查不到
	return decodeInt(jsonPath(resp, "data", "Media", "id")), nil
}

// StreamingEpisodes 获取流媒体剧集列表
func (c *AniListClient) StreamingEpisodes(ctx context.Context, id int) ([]model.StreamingEpisode, error) {
	var resp json.RawMessage
	req := graphQLRequest{
		Query:     aniListStreamingQuery,
		Variables: map[string]interface{}{"id": id},
	}
	if err := c.http.PostJSON(ctx, c.endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("anilist 查询剧集失败: %w", err)
	}
	c.logErrors("streaming", resp)

	return decodeList[model.StreamingEpisode](jsonPath(resp, "data", "Media", "streamingEpisodes"), c.logger), nil
}

// logErrors 记录 GraphQL errors 数组，形状不对的条目跳过
func (c *AniListClient) logErrors(op string, resp json.RawMessage) {
	for _, e := range decodeList[graphQLError](jsonField(resp, "errors"), c.logger) {
		c.logger.Debug("GraphQL 返回错误", "op", op, "status", e.Status, "message", e.Message)
	}
}
