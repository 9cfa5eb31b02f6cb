package blog

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

var _ Source = (*FeedSource)(nil)

// FeedSource reads posts from the blog's public Atom/RSS feed. It needs no
// API key.
type FeedSource struct {
	feedURL string
}

func NewFeedSource(feedURL string) *FeedSource {
	return &FeedSource{feedURL: strings.TrimSpace(feedURL)}
}

func (s *FeedSource) Name() string {
	return "blog_feed"
}

func (s *FeedSource) Configured() bool {
	return s.feedURL != ""
}

func (s *FeedSource) NewRequest(ctx context.Context, maxResults int) (*http.Request, error) {
	endpoint, err := url.Parse(s.feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed URL: %w", err)
	}

	query := endpoint.Query()
	query.Set("max-results", strconv.Itoa(maxResults))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/atom+xml, application/rss+xml, application/xml;q=0.9")

	return req, nil
}

func (s *FeedSource) Decode(data []byte) ([]RawPost, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	posts := make([]RawPost, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		posts = append(posts, s.rawPost(item))
	}

	return posts, nil
}

func (s *FeedSource) rawPost(item *gofeed.Item) RawPost {
	raw := RawPost{
		ID:      postID(cmp.Or(item.GUID, item.Link)),
		Content: cmp.Or(item.Content, item.Description),
		URL:     item.Link,
		Labels:  item.Categories,
	}

	if item.Title != "" {
		title := item.Title
		raw.Title = &title
	}

	if item.PublishedParsed != nil {
		raw.Published = item.PublishedParsed.Format(time.RFC3339)
	} else {
		raw.Published = item.Published
	}

	if name := s.authorName(item); name != "" {
		raw.Author = &RawAuthor{DisplayName: &name}
	}

	return raw
}

func (s *FeedSource) authorName(item *gofeed.Item) string {
	for _, author := range item.Authors {
		if author != nil && strings.TrimSpace(author.Name) != "" {
			return strings.TrimSpace(author.Name)
		}
	}
	if item.Author != nil {
		return strings.TrimSpace(item.Author.Name)
	}
	return ""
}

// postID reduces Blogger Atom ids ("tag:blogger.com,1999:blog-1.post-2") to
// the numeric post id the JSON API uses.
func postID(guid string) string {
	if i := strings.LastIndex(guid, ".post-"); i >= 0 && strings.HasPrefix(guid, "tag:blogger.com") {
		return guid[i+len(".post-"):]
	}
	return guid
}
