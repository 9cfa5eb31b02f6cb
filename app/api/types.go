package api

import (
	"context"
	"time"

	"github.com/lysyi3m/portfolio-api/app/blog"
	"github.com/lysyi3m/portfolio-api/app/database"
)

type BlogGateway interface {
	FetchPosts(ctx context.Context, maxResults int) blog.FetchResult
	FallbackPosts() blog.FetchResult
	Configured() bool
}

var _ BlogGateway = (*blog.Gateway)(nil)

type Handler struct {
	gateway     BlogGateway
	messageRepo database.MessageRepository
	version     string
	now         func() time.Time
}

type statusUpdateRequest struct {
	NewStatus string `json:"new_status"`
}
