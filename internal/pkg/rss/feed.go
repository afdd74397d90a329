package rss

import (
	"encoding/xml"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

type rssDocument struct {
	Channel struct {
		Title string    `xml:"title"`
		Link  string    `xml:"link"`
		Item  []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Category    []string `xml:"category"`
	PubDate     string   `xml:"pubDate"`
}

// pubDateLayouts 各平台 RSS 实际出现过的时间格式
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseFeed 解析 RSS 2.0 文档并转为按发布时间倒序的文章列表
func parseFeed(data []byte) ([]Article, error) {
	var doc rssDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(ErrFetchFailed, err.Error())
	}

	articles := make([]Article, 0, len(doc.Channel.Item))
	for _, item := range doc.Channel.Item {
		article := Article{
			Title:       strings.TrimSpace(item.Title),
			Link:        strings.TrimSpace(item.Link),
			Summary:     summarize(item.Description),
			PublishedAt: parsePubDate(item.PubDate),
		}
		if len(item.Category) > 0 {
			article.Category = strings.TrimSpace(item.Category[0])
		}
		articles = append(articles, article)
	}

	// RSS 惯例是最新在前，但不是所有平台都守约定
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})

	return articles, nil
}

func parsePubDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now()
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}

const maxSummaryLen = 200

// summarize 把 description 中的 HTML 还原为纯文本摘要
func summarize(description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return truncate(description, maxSummaryLen)
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")
	return truncate(text, maxSummaryLen)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
