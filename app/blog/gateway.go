package blog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	errorBodyLimit = 2048
)

const (
	msgConfigMissing = "Blog configuration not available"
	msgForbidden     = "API access denied - check credentials"
	msgNotFound      = "Blog not found"
	msgTimeout       = "Request timed out"
	msgNetwork       = "Network error occurred"
	msgUnexpected    = "An unexpected error occurred"
)

type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// Gateway fetches posts from a Source and normalizes them. It keeps no
// state between calls.
type Gateway struct {
	source     Source
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

func NewGateway(source Source, httpClient *http.Client, config Config) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Gateway{
		source:     source,
		httpClient: httpClient,
		timeout:    timeout,
		userAgent:  config.UserAgent,
	}
}

func (g *Gateway) Configured() bool {
	return g.source != nil && g.source.Configured()
}

// FetchPosts performs a single upstream call. Every failure mode is mapped
// to a Failure; no retries are made.
func (g *Gateway) FetchPosts(ctx context.Context, maxResults int) (result FetchResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Unexpected error", "operation", "fetch_posts", "error", fmt.Sprint(r))
			result = Failure{Kind: FailureUnexpected, Message: msgUnexpected}
		}
	}()

	if !g.Configured() {
		slog.Warn("Blog source not configured")
		return Failure{Kind: FailureConfigMissing, Message: msgConfigMissing}
	}

	reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := g.source.NewRequest(reqCtx, maxResults)
	if err != nil {
		slog.Error("Unexpected error", "operation", "build_request", "source", g.source.Name(), "error", err)
		return Failure{Kind: FailureUnexpected, Message: msgUnexpected}
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return g.transportFailure(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return g.readPosts(resp)
	case http.StatusForbidden:
		slog.Error("Upstream access forbidden - check API key and permissions", "source", g.source.Name())
		return Failure{Kind: FailureForbidden, Message: msgForbidden}
	case http.StatusNotFound:
		slog.Error("Blog not found - check blog ID", "source", g.source.Name())
		return Failure{Kind: FailureNotFound, Message: msgNotFound}
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		slog.Error("Upstream request failed",
			"source", g.source.Name(),
			"status", resp.StatusCode,
			"body", string(body))
		return Failure{
			Kind:    FailureUpstreamStatus,
			Message: fmt.Sprintf("API request failed: %d", resp.StatusCode),
		}
	}
}

func (g *Gateway) readPosts(resp *http.Response) FetchResult {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return g.transportFailure(err)
	}

	raws, err := g.source.Decode(data)
	if err != nil {
		slog.Error("Unexpected error", "operation", "decode_posts", "source", g.source.Name(), "error", err)
		return Failure{Kind: FailureUnexpected, Message: msgUnexpected}
	}

	posts := make([]Post, 0, len(raws))
	for _, raw := range raws {
		if post, ok := Normalize(raw); ok {
			posts = append(posts, post)
		}
	}

	slog.Debug("Blog posts fetched",
		"source", g.source.Name(),
		"received", len(raws),
		"normalized", len(posts))

	return Success{
		Posts:       posts,
		TotalPosts:  len(posts),
		LastFetched: time.Now().UTC(),
	}
}

func (g *Gateway) transportFailure(err error) Failure {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		slog.Error("Upstream request timed out", "source", g.source.Name(), "timeout", g.timeout)
		return Failure{Kind: FailureTimeout, Message: msgTimeout}
	}

	slog.Error("Network error", "source", g.source.Name(), "error", err)
	return Failure{Kind: FailureNetwork, Message: msgNetwork}
}

// FallbackPosts is the static payload served when live posts are unavailable.
func (g *Gateway) FallbackPosts() FetchResult {
	return FallbackPosts()
}

// Find returns the post with the given id.
func (s Success) Find(id string) (Post, bool) {
	for _, post := range s.Posts {
		if post.ID == id {
			return post, true
		}
	}
	return Post{}, false
}
