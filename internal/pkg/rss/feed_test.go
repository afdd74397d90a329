package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>테스트 블로그</title>
    <link>https://example.com</link>
    <item>
      <title>오래된 글</title>
      <link>https://example.com/old</link>
      <description><![CDATA[<p>첫 번째 <b>문단</b>입니다.</p>]]></description>
      <category>go</category>
      <category>backend</category>
      <pubDate>Mon, 02 Jun 2025 09:00:00 +0900</pubDate>
    </item>
    <item>
      <title>최신 글</title>
      <link>https://example.com/new</link>
      <description>plain text summary</description>
      <pubDate>Tue, 03 Jun 2025 09:00:00 +0900</pubDate>
    </item>
  </channel>
</rss>`

func TestParseFeedOrdersNewestFirst(t *testing.T) {
	articles, err := parseFeed([]byte(sampleFeed))
	require.NoError(t, err)
	require.Len(t, articles, 2)

	// 源里旧的在前，解析结果必须按发布时间倒序
	assert.Equal(t, "최신 글", articles[0].Title)
	assert.Equal(t, "https://example.com/new", articles[0].Link)
	assert.Equal(t, "오래된 글", articles[1].Title)
	assert.True(t, articles[0].PublishedAt.After(articles[1].PublishedAt))
}

func TestParseFeedStripsHTMLAndPicksFirstCategory(t *testing.T) {
	articles, err := parseFeed([]byte(sampleFeed))
	require.NoError(t, err)

	old := articles[1]
	assert.Equal(t, "첫 번째 문단입니다.", old.Summary)
	assert.Equal(t, "go", old.Category)
	assert.Equal(t, "", articles[0].Category)
}

func TestParseFeedTruncatesLongSummary(t *testing.T) {
	long := strings.Repeat("가", 300)
	feed := `<rss version="2.0"><channel><item><title>t</title><link>l</link><description>` + long + `</description><pubDate>Tue, 03 Jun 2025 09:00:00 +0900</pubDate></item></channel></rss>`

	articles, err := parseFeed([]byte(feed))
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, maxSummaryLen, len([]rune(articles[0].Summary)))
}

func TestParseFeedRejectsBrokenXML(t *testing.T) {
	_, err := parseFeed([]byte("<rss><channel><item"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetchFailed))
}

func TestParsePubDateLayouts(t *testing.T) {
	cases := []string{
		"Tue, 03 Jun 2025 09:00:00 +0900",
		"Tue, 03 Jun 2025 09:00:00 KST",
		"2025-06-03T09:00:00+09:00",
		"2025-06-03 09:00:00",
	}
	for _, raw := range cases {
		got := parsePubDate(raw)
		assert.Equal(t, 2025, got.Year(), "layout: %s", raw)
		assert.Equal(t, time.June, got.Month(), "layout: %s", raw)
	}
}

func TestFetchFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	articles, err := client.FetchFeed(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestFetchFeedBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(5 * time.Second)
	_, err := client.FetchFeed(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetchFailed))
}
