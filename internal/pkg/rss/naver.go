package rss

import (
	"context"
	"fmt"
)

// NaverAdapter naver 博客提供 blogId 维度的 RSS
type NaverAdapter struct {
	client *Client
}

func NewNaverAdapter(client *Client) *NaverAdapter {
	return &NaverAdapter{client: client}
}

func (s *NaverAdapter) Fetch(ctx context.Context, accountID string) ([]Article, error) {
	feedURL := fmt.Sprintf("https://rss.blog.naver.com/%s.xml", accountID)
	return s.client.FetchFeed(ctx, feedURL)
}
