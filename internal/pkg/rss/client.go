package rss

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Client 各适配器共享的 RSS 抓取客户端
// 超时是硬性要求：挂死的外部平台不能占着连接池不放
type Client struct {
	http *resty.Client
}

func NewClient(timeout time.Duration) *Client {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "jandi-rss-sync/1.0").
		SetRetryCount(1)

	return &Client{http: httpClient}
}

// FetchFeed 拉取并解析一个 RSS 地址
func (s *Client) FetchFeed(ctx context.Context, feedURL string) ([]Article, error) {
	resp, err := s.http.R().SetContext(ctx).Get(feedURL)
	if err != nil {
		return nil, errors.Wrap(ErrFetchFailed, err.Error())
	}
	if resp.StatusCode() >= 300 {
		return nil, errors.Wrap(ErrFetchFailed, fmt.Sprintf("feed 响应异常: %s -> %d", feedURL, resp.StatusCode()))
	}

	return parseFeed(resp.Body())
}
