package blog

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed fallback.yml
var fallbackData []byte

var fallbackPosts = mustLoadFallback(fallbackData)

func mustLoadFallback(data []byte) []Post {
	var doc struct {
		Posts []Post `yaml:"posts"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		panic(fmt.Sprintf("blog: invalid fallback posts: %v", err))
	}
	if len(doc.Posts) == 0 {
		panic("blog: fallback posts are empty")
	}
	return doc.Posts
}

// FallbackPosts always succeeds. Each call returns its own copy of the
// fallback posts.
func FallbackPosts() FetchResult {
	posts := make([]Post, len(fallbackPosts))
	copy(posts, fallbackPosts)

	return Success{
		Posts:       posts,
		TotalPosts:  len(posts),
		LastFetched: time.Now().UTC(),
		IsFallback:  true,
	}
}
