package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/portfolio-api/app/blog"
	"github.com/lysyi3m/portfolio-api/app/database"
)

const (
	defaultMaxResults = 10
	// Single post lookups scan a larger page for the requested id.
	lookupMaxResults = 50
)

func NewHandler(gateway BlogGateway, messageRepo database.MessageRepository, version string) *Handler {
	return &Handler{
		gateway:     gateway,
		messageRepo: messageRepo,
		version:     version,
		now:         time.Now,
	}
}

func (h *Handler) GetPosts(c *gin.Context) {
	maxResults := defaultMaxResults
	if value := c.Query("max_results"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "max_results must be a positive integer"})
			return
		}
		maxResults = parsed
	}

	slog.Info("Fetching blog posts", "max_results", maxResults)

	var success blog.Success
	switch result := h.fetchPosts(c.Request.Context(), maxResults).(type) {
	case blog.Success:
		success = result
		slog.Info("Fetched blog posts", "total", result.TotalPosts)
	case blog.Failure:
		slog.Warn("Blog API error, serving fallback posts", "kind", result.Kind, "message", result.Message)
		success = h.fallbackPosts()
	default:
		slog.Error("Unknown blog fetch result, serving fallback posts", "result", fmt.Sprintf("%T", result))
		success = h.fallbackPosts()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   postsData(success),
	})
}

func (h *Handler) GetPostByID(c *gin.Context) {
	id := c.Param("id")

	result, ok := h.fetchPosts(c.Request.Context(), lookupMaxResults).(blog.Success)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Blog post not found"})
		return
	}

	post, found := result.Find(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Blog post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   post,
	})
}

func (h *Handler) GetBlogHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "blog",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":          "healthy",
		"timestamp":       h.now().In(time.Local).Format(time.RFC3339),
		"version":         h.version,
		"blog_configured": h.gateway.Configured(),
	}

	if count, err := h.messageRepo.GetMessageCount(c.Request.Context()); err == nil {
		health["contact_messages"] = count
	} else {
		slog.Error("Database error", "operation", "get_message_count", "error", err)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetServiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Portfolio API",
		"version": h.version,
		"endpoints": map[string]string{
			"posts":          "/api/blog/posts?max_results=<n>",
			"post":           "/api/blog/posts/<id>",
			"blog_health":    "/api/blog/health",
			"contact":        "/api/contact (POST)",
			"messages":       "/api/contact/messages?skip=<n>&limit=<n>&status=<status>",
			"message_status": "/api/contact/messages/<id>/status (PUT)",
			"health":         "/health",
		},
	})
}

// fetchPosts converts a panic in the gateway into a Failure so callers
// can still pick their own degraded response.
func (h *Handler) fetchPosts(ctx context.Context, maxResults int) (result blog.FetchResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Unexpected error fetching blog posts", "error", fmt.Sprint(r))
			result = blog.Failure{Kind: blog.FailureUnexpected, Message: "An unexpected error occurred"}
		}
	}()

	return h.gateway.FetchPosts(ctx, maxResults)
}

func (h *Handler) fallbackPosts() blog.Success {
	if success, ok := h.gateway.FallbackPosts().(blog.Success); ok {
		return success
	}
	return blog.FallbackPosts().(blog.Success)
}

func postsData(result blog.Success) gin.H {
	posts := result.Posts
	if posts == nil {
		posts = []blog.Post{}
	}

	data := gin.H{
		"posts":       posts,
		"totalPosts":  result.TotalPosts,
		"lastFetched": result.LastFetched.UTC().Format(time.RFC3339),
	}
	if result.IsFallback {
		data["isFallback"] = true
	}
	return data
}
