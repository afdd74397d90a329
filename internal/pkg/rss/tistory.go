package rss

import (
	"context"
	"fmt"
)

// TistoryAdapter tistory 的 RSS 在用户子域名下
type TistoryAdapter struct {
	client *Client
}

func NewTistoryAdapter(client *Client) *TistoryAdapter {
	return &TistoryAdapter{client: client}
}

func (s *TistoryAdapter) Fetch(ctx context.Context, accountID string) ([]Article, error) {
	feedURL := fmt.Sprintf("https://%s.tistory.com/rss", accountID)
	return s.client.FetchFeed(ctx, feedURL)
}
