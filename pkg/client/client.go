// Package client 是 MoLin 接口的类型化客户端，
// 自带查询缓存：任何写操作都会让相关实体的缓存失效，下次读取自动重新请求。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultCacheSize = 128
	defaultCacheTTL  = time.Minute
)

type Client struct {
	baseURL string
	httpc   *http.Client
	cache   *lru.Cache[string, cacheEntry]
	ttl     time.Duration
}

type cacheEntry struct {
	payload   []byte
	expiresAt time.Time
}

// APIError 失败信封对应的错误
type APIError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

func New(baseURL string) *Client {
	// 容量为正时不会失败
	cache, _ := lru.New[string, cacheEntry](defaultCacheSize)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		ttl:     defaultCacheTTL,
	}
}

// --- Posts ---

// PostQuery 文章列表的过滤参数
type PostQuery struct {
	Published   *bool
	Search      string
	CategoryIDs []string
}

func (q PostQuery) encode() string {
	values := url.Values{}
	if q.Published != nil {
		values.Set("published", fmt.Sprintf("%t", *q.Published))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if len(q.CategoryIDs) > 0 {
		values.Set("category_ids", strings.Join(q.CategoryIDs, ","))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

func (c *Client) GetPosts(ctx context.Context, q PostQuery) ([]Post, error) {
	var posts []Post
	err := c.get(ctx, "/api/posts"+q.encode(), &posts)
	return posts, err
}

func (c *Client) GetPostBySlug(ctx context.Context, slug string) (Post, error) {
	var post Post
	err := c.get(ctx, "/api/posts/slug/"+url.PathEscape(slug), &post)
	return post, err
}

func (c *Client) GetPostByID(ctx context.Context, id string) (Post, error) {
	var post Post
	err := c.get(ctx, "/api/posts/"+url.PathEscape(id), &post)
	return post, err
}

func (c *Client) CreatePost(ctx context.Context, in CreatePostInput) (Post, error) {
	var post Post
	err := c.mutate(ctx, http.MethodPost, "/api/posts", in, &post, "/api/posts")
	return post, err
}

func (c *Client) UpdatePost(ctx context.Context, id string, in UpdatePostInput) (Post, error) {
	var post Post
	err := c.mutate(ctx, http.MethodPut, "/api/posts/"+url.PathEscape(id), in, &post, "/api/posts")
	return post, err
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.mutate(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, nil, "/api/posts")
}

// --- Categories ---

func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := c.get(ctx, "/api/categories", &categories)
	return categories, err
}

func (c *Client) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	var category Category
	err := c.get(ctx, "/api/categories/slug/"+url.PathEscape(slug), &category)
	return category, err
}

func (c *Client) CreateCategory(ctx context.Context, in CreateCategoryInput) (Category, error) {
	var category Category
	err := c.mutate(ctx, http.MethodPost, "/api/categories", in, &category, "/api/categories")
	return category, err
}

func (c *Client) UpdateCategory(ctx context.Context, id string, in UpdateCategoryInput) (Category, error) {
	var category Category
	// 分类改名会影响文章详情里内嵌的分类，一并失效
	err := c.mutate(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), in, &category,
		"/api/categories", "/api/posts")
	return category, err
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.mutate(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil,
		"/api/categories", "/api/posts")
}

// --- transport ---

// get 读操作走缓存，未命中或过期时请求并回填
func (c *Client) get(ctx context.Context, path string, out any) error {
	if entry, ok := c.cache.Get(path); ok {
		if time.Now().Before(entry.expiresAt) {
			return json.Unmarshal(entry.payload, out)
		}
		c.cache.Remove(path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	data, err := c.do(req)
	if err != nil {
		return err
	}

	c.cache.Add(path, cacheEntry{payload: data, expiresAt: time.Now().Add(c.ttl)})
	return json.Unmarshal(data, out)
}

// mutate 写操作，成功后让给定前缀的缓存失效
func (c *Client) mutate(ctx context.Context, method, path string, body, out any, invalidate ...string) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	data, err := c.do(req)
	if err != nil {
		return err
	}

	for _, prefix := range invalidate {
		c.invalidatePrefix(prefix)
	}

	if out != nil && len(data) > 0 {
		return json.Unmarshal(data, out)
	}
	return nil
}

// do 发请求并拆信封，失败信封转成 *APIError
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if !env.Success {
		if env.Error != nil {
			return nil, env.Error
		}
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return env.Data, nil
}

func (c *Client) invalidatePrefix(prefix string) {
	for _, key := range c.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Remove(key)
		}
	}
}
