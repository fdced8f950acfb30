package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"go-news-portal/internal/core/cache"
	"go-news-portal/internal/domain"
)

// Client 上游新闻 API 只读透传：响应体原样返回，不做解析。
// 缓存可选（nil 表示直连），替代旧版前端的进程级内存缓存。
type Client struct {
	BaseURL string
	APIKey  string
	TTL     time.Duration

	HTTP  *http.Client
	Cache *cache.Cache
	Log   *zap.Logger
}

func NewClient(baseURL, apiKey string, ttlSec int, c *cache.Cache, l *zap.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		TTL:     time.Duration(ttlSec) * time.Second,
		HTTP:    &http.Client{Timeout: 8 * time.Second},
		Cache:   c,
		Log:     l,
	}
}

// Fetch 按分类/关键词取新闻。category 和 query 都可为空。
func (c *Client) Fetch(ctx context.Context, category, query string) (json.RawMessage, error) {
	if c.Cache == nil {
		return c.fetch(ctx, category, query)
	}
	key := "news:" + category + ":" + query
	out, err := cache.GetOrLoadJSON[json.RawMessage](c.Cache, ctx, key, c.TTL,
		func(ctx context.Context) (*json.RawMessage, error) {
			b, e := c.fetch(ctx, category, query)
			if e != nil {
				return nil, e
			}
			raw := json.RawMessage(b)
			return &raw, nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return *out, nil
}

func (c *Client) fetch(ctx context.Context, category, query string) ([]byte, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: bad news base url: %v", domain.ErrUpstream, err)
	}
	q := u.Query()
	if category != "" {
		q.Set("category", category)
	}
	if query != "" {
		q.Set("q", query)
	}
	if c.APIKey != "" {
		q.Set("apiKey", c.APIKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		if c.Log != nil {
			c.Log.Warn("news upstream non-2xx",
				zap.Int("status", res.StatusCode),
				zap.String("category", category),
				zap.String("q", query),
			)
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstream, res.StatusCode)
	}
	return body, nil
}
