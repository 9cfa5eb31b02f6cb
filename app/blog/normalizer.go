package blog

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	DefaultTitle    = "Untitled"
	DefaultCategory = "AI/ML"
	DefaultAuthor   = "G.J. Rahul"

	DateUnavailable = "Date unavailable"

	publishedLayout = "January 02, 2006"

	excerptLength  = 150
	wordsPerMinute = 200
)

var (
	tagPattern    = regexp.MustCompile(`<[^>]+>`)
	imgSrcPattern = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)
)

// isoLayouts are tried in order when parsing the upstream published field.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04-07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Normalize derives a display-ready Post from an upstream record. It never
// fails the batch: any panic while deriving fields turns into ok=false and
// the post is skipped by the caller.
func Normalize(raw RawPost) (post Post, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Error processing blog post", "id", raw.ID, "error", fmt.Sprint(r))
			post, ok = Post{}, false
		}
	}()

	if raw.nullContent || raw.nullAuthor {
		slog.Error("Error processing blog post", "id", raw.ID, "error", "content or author is null")
		return Post{}, false
	}

	title := DefaultTitle
	if raw.Title != nil {
		title = *raw.Title
	}

	author := DefaultAuthor
	if raw.Author != nil && raw.Author.DisplayName != nil {
		author = *raw.Author.DisplayName
	}

	category := DefaultCategory
	if len(raw.Labels) > 0 {
		category = raw.Labels[0]
	}

	return Post{
		ID:            raw.ID,
		Title:         title,
		Excerpt:       Excerpt(raw.Content),
		Content:       raw.Content,
		PublishDate:   FormatPublishDate(raw.Published),
		ReadTime:      ReadTime(raw.Content),
		Category:      category,
		URL:           raw.URL,
		Author:        author,
		FeaturedImage: FeaturedImage(raw.Content),
	}, true
}

// StripTags removes anything that looks like a markup tag. It is a plain
// regexp replacement, not an HTML parser.
func StripTags(content string) string {
	return tagPattern.ReplaceAllString(content, "")
}

// PlainText strips tags, decodes entities and collapses whitespace.
func PlainText(content string) string {
	text := html.UnescapeString(StripTags(content))
	return strings.Join(strings.Fields(text), " ")
}

func Excerpt(content string) string {
	text := PlainText(content)
	runes := []rune(text)
	if len(runes) > excerptLength {
		return string(runes[:excerptLength]) + "..."
	}
	return text
}

// ReadTime counts words in the tag-stripped content, entities left as is.
func ReadTime(content string) string {
	words := len(strings.Fields(StripTags(content)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes <= 1 {
		return "1 min read"
	}
	return fmt.Sprintf("%d min read", minutes)
}

func FormatPublishDate(published string) string {
	t, err := parsePublished(published)
	if err != nil {
		return DateUnavailable
	}
	return t.Format(publishedLayout)
}

func parsePublished(published string) (time.Time, error) {
	if strings.HasSuffix(published, "Z") {
		published = strings.TrimSuffix(published, "Z") + "+00:00"
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, published); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", published)
}

// FeaturedImage returns the src of the first <img> tag, or nil.
func FeaturedImage(content string) *string {
	match := imgSrcPattern.FindStringSubmatch(content)
	if match == nil {
		return nil
	}
	src := match[1]
	return &src
}
