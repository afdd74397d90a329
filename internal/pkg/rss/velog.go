package rss

import (
	"context"
	"fmt"
)

// VelogAdapter velog 的 RSS 地址按用户名拼接
type VelogAdapter struct {
	client *Client
}

func NewVelogAdapter(client *Client) *VelogAdapter {
	return &VelogAdapter{client: client}
}

func (s *VelogAdapter) Fetch(ctx context.Context, accountID string) ([]Article, error) {
	feedURL := fmt.Sprintf("https://v2.velog.io/rss/@%s", accountID)
	return s.client.FetchFeed(ctx, feedURL)
}
