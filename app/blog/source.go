package blog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Source builds the upstream request for a batch of posts and decodes the
// response body into raw posts. HTTP status handling stays in the Gateway.
type Source interface {
	Name() string
	Configured() bool
	NewRequest(ctx context.Context, maxResults int) (*http.Request, error)
	Decode(data []byte) ([]RawPost, error)
}

const bloggerFields = "items(id,title,content,published,updated,url,author,labels),nextPageToken"

var _ Source = (*BloggerSource)(nil)

// BloggerSource reads posts from the Blogger v3 JSON API.
type BloggerSource struct {
	baseURL string
	apiKey  string
	blogID  string
}

func NewBloggerSource(baseURL, apiKey, blogID string) *BloggerSource {
	return &BloggerSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		blogID:  blogID,
	}
}

func (s *BloggerSource) Name() string {
	return "blogger_api"
}

func (s *BloggerSource) Configured() bool {
	return s.apiKey != "" && s.blogID != ""
}

func (s *BloggerSource) NewRequest(ctx context.Context, maxResults int) (*http.Request, error) {
	endpoint, err := url.Parse(fmt.Sprintf("%s/%s/posts", s.baseURL, url.PathEscape(s.blogID)))
	if err != nil {
		return nil, fmt.Errorf("failed to build posts URL: %w", err)
	}

	query := endpoint.Query()
	query.Set("key", s.apiKey)
	query.Set("maxResults", strconv.Itoa(maxResults))
	query.Set("fields", bloggerFields)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// Decode parses the posts envelope. A body that is not an object, or has no
// items array, yields zero posts. Items that do not have the shape of a post
// are logged and skipped.
func (s *BloggerSource) Decode(data []byte) ([]RawPost, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, fmt.Errorf("failed to decode posts response: %w", err)
		}
		slog.Warn("Posts response is not an object", "type", typeErr.Value)
		return []RawPost{}, nil
	}

	itemsData, ok := envelope["items"]
	if !ok || isJSONNull(itemsData) {
		return []RawPost{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(itemsData, &items); err != nil {
		slog.Error("Error processing blog posts", "error", "items is not an array")
		return []RawPost{}, nil
	}

	posts := make([]RawPost, 0, len(items))
	for i, item := range items {
		if isJSONNull(item) {
			slog.Error("Error processing blog post", "index", i, "error", "null item")
			continue
		}

		var raw RawPost
		if err := json.Unmarshal(item, &raw); err != nil {
			slog.Error("Error processing blog post", "index", i, "error", err)
			continue
		}
		posts = append(posts, raw)
	}

	return posts, nil
}
