package utils

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Animedex/1.0 (+https://github.com/user/animedex)"

// HTTPClient 上游 JSON 接口客户端
// 不重试、不缓存，每次调用只发一次请求
type HTTPClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	logger     hclog.Logger
}

// NewHTTPClient 创建客户端，ratePerSec <= 0 表示不限速
func NewHTTPClient(timeout time.Duration, ratePerSec float64, logger hclog.Logger) *HTTPClient {
	limit, burst := rate.Inf, 1
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
		if b := int(ratePerSec); b > 1 {
			burst = b
		}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
		userAgent:  defaultUserAgent,
		logger:     logger,
	}
}

// GetJSON 发送 GET 请求并解析 JSON 响应
func (c *HTTPClient) GetJSON(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	return c.do(req, target)
}

// PostJSON 以 JSON 请求体发送 POST 请求并解析 JSON 响应
func (c *HTTPClient) PostJSON(ctx context.Context, url string, payload, target interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化请求体失败: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, target)
}

// do 发送请求并解码响应
// 非 2xx 的响应只要是合法 JSON 也照常解码，由调用方根据字段是否存在判断
func (c *HTTPClient) do(req *http.Request, target interface{}) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("等待限流失败: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	var reader io.ReadCloser
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("创建gzip读取器失败: %w", err)
		}
		defer reader.Close()
	case "deflate":
		reader = flate.NewReader(resp.Body)
		defer reader.Close()
	default:
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("读取响应失败: %w", err)
	}

	c.logger.Trace("上游响应", "method", req.Method, "url", req.URL.String(),
		"status", resp.StatusCode, "bytes", len(body), "latency", time.Since(start))

	if err := json.Unmarshal(body, target); err != nil {
		c.logger.Debug("解析JSON失败", "url", req.URL.String(), "status", resp.StatusCode, "body", truncate(body, 200))
		return fmt.Errorf("解析JSON失败(状态码 %d): %w", resp.StatusCode, err)
	}
	return nil
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}
