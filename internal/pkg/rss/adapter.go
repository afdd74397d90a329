package rss

import (
	"Jandi/internal/pkg/consts"
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrFetchFailed 外部抓取失败（网络/解析），与"确实没有文章"区分开
var ErrFetchFailed = errors.New("rss 抓取失败")

// Article 外部平台的一篇文章，按发布时间由新到旧排列
type Article struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Summary     string    `json:"summary"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"published_at"`
}

// Adapter 平台适配器：按账号拉取文章列表，最新在前
type Adapter interface {
	// Fetch 必须受 ctx 超时约束，网络或解析失败返回包装了 ErrFetchFailed 的错误
	Fetch(ctx context.Context, accountID string) ([]Article, error)
}

// Registry 平台能力集，进程启动时构建一次，之后只读
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register 注册一个平台适配器，仅在启动期调用
func (s *Registry) Register(platformName string, adapter Adapter) {
	s.adapters[platformName] = adapter
}

// Resolve 按平台名查找适配器
func (s *Registry) Resolve(platformName string) (Adapter, bool) {
	adapter, ok := s.adapters[platformName]
	return adapter, ok
}

// DefaultRegistry 构建内置三个平台的能力集
func DefaultRegistry(client *Client) *Registry {
	registry := NewRegistry()
	registry.Register(consts.PlatformVelog, NewVelogAdapter(client))
	registry.Register(consts.PlatformNaver, NewNaverAdapter(client))
	registry.Register(consts.PlatformTistory, NewTistoryAdapter(client))
	return registry
}
