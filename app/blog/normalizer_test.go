package blog

import (
	"encoding/json"
	"strings"
	"testing"
)

func strPtr(s string) *string {
	return &s
}

func TestNormalizeDefaults(t *testing.T) {
	post, ok := Normalize(RawPost{})
	if !ok {
		t.Fatal("Expected empty raw post to normalize")
	}

	if post.ID != "" {
		t.Errorf("Expected empty ID, got '%s'", post.ID)
	}
	if post.Title != DefaultTitle {
		t.Errorf("Expected title '%s', got '%s'", DefaultTitle, post.Title)
	}
	if post.Category != DefaultCategory {
		t.Errorf("Expected category '%s', got '%s'", DefaultCategory, post.Category)
	}
	if post.Author != DefaultAuthor {
		t.Errorf("Expected author '%s', got '%s'", DefaultAuthor, post.Author)
	}
	if post.PublishDate != DateUnavailable {
		t.Errorf("Expected publish date '%s', got '%s'", DateUnavailable, post.PublishDate)
	}
	if post.ReadTime != "1 min read" {
		t.Errorf("Expected '1 min read', got '%s'", post.ReadTime)
	}
	if post.URL != "" {
		t.Errorf("Expected empty URL, got '%s'", post.URL)
	}
	if post.FeaturedImage != nil {
		t.Errorf("Expected no featured image, got '%s'", *post.FeaturedImage)
	}
}

func TestNormalizeFields(t *testing.T) {
	raw := RawPost{
		ID:        "7001",
		Title:     strPtr("Attention Is All You Need, Revisited"),
		Content:   `<p>Transformers &amp; friends</p><img src="https://example.com/cover.png">`,
		Published: "2024-03-05T10:00:00Z",
		URL:       "https://example.blogspot.com/2024/03/attention.html",
		Author:    &RawAuthor{DisplayName: strPtr("Guest Writer")},
		Labels:    []string{"Tutorials", "AI"},
	}

	post, ok := Normalize(raw)
	if !ok {
		t.Fatal("Expected post to normalize")
	}

	if post.ID != "7001" {
		t.Errorf("Expected ID '7001', got '%s'", post.ID)
	}
	if post.Title != "Attention Is All You Need, Revisited" {
		t.Errorf("Unexpected title '%s'", post.Title)
	}
	if post.Excerpt != "Transformers & friends" {
		t.Errorf("Expected excerpt 'Transformers & friends', got '%s'", post.Excerpt)
	}
	if post.Content != raw.Content {
		t.Errorf("Expected content to pass through unchanged, got '%s'", post.Content)
	}
	if post.PublishDate != "March 05, 2024" {
		t.Errorf("Expected 'March 05, 2024', got '%s'", post.PublishDate)
	}
	if post.Category != "Tutorials" {
		t.Errorf("Expected category 'Tutorials', got '%s'", post.Category)
	}
	if post.Author != "Guest Writer" {
		t.Errorf("Expected author 'Guest Writer', got '%s'", post.Author)
	}
	if post.URL != raw.URL {
		t.Errorf("Expected URL '%s', got '%s'", raw.URL, post.URL)
	}
	if post.FeaturedImage == nil || *post.FeaturedImage != "https://example.com/cover.png" {
		t.Errorf("Expected featured image 'https://example.com/cover.png', got %v", post.FeaturedImage)
	}
}

func TestNormalizeKeepsPresentEmptyValues(t *testing.T) {
	post, _ := Normalize(RawPost{
		Title:  strPtr(""),
		Author: &RawAuthor{},
		Labels: []string{},
	})

	if post.Title != "" {
		t.Errorf("Expected present empty title to be kept, got '%s'", post.Title)
	}
	if post.Author != DefaultAuthor {
		t.Errorf("Expected default author when displayName is missing, got '%s'", post.Author)
	}
	if post.Category != DefaultCategory {
		t.Errorf("Expected default category for empty labels, got '%s'", post.Category)
	}
}

func TestNormalizeDropsNullFields(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"null content", `{"id": "n1", "content": null}`, false},
		{"null author", `{"id": "n2", "author": null}`, false},
		{"missing content and author", `{"id": "n3"}`, true},
		{"null author displayName", `{"id": "n4", "author": {"displayName": null}}`, true},
		{"null title", `{"id": "n5", "title": null}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw RawPost
			if err := json.Unmarshal([]byte(tt.input), &raw); err != nil {
				t.Fatalf("Failed to decode raw post: %v", err)
			}

			_, ok := Normalize(raw)
			if ok != tt.expected {
				t.Errorf("Expected ok=%v, got %v", tt.expected, ok)
			}
		})
	}
}

func TestRawPostDecode(t *testing.T) {
	var raw RawPost
	input := `{"id": "7", "title": "T", "content": "<p>Body</p>", "author": {"displayName": "Ann"}, "labels": ["Go"]}`
	if err := json.Unmarshal([]byte(input), &raw); err != nil {
		t.Fatalf("Failed to decode raw post: %v", err)
	}

	if raw.ID != "7" || raw.Title == nil || *raw.Title != "T" {
		t.Errorf("Unexpected id/title: %s %v", raw.ID, raw.Title)
	}
	if raw.Content != "<p>Body</p>" {
		t.Errorf("Expected content '<p>Body</p>', got '%s'", raw.Content)
	}
	if raw.Author == nil || raw.Author.DisplayName == nil || *raw.Author.DisplayName != "Ann" {
		t.Errorf("Expected author 'Ann', got %v", raw.Author)
	}
	if len(raw.Labels) != 1 || raw.Labels[0] != "Go" {
		t.Errorf("Expected labels [Go], got %v", raw.Labels)
	}

	for _, bad := range []string{`{"content": 5}`, `{"author": "Ann"}`, `{"title": 3}`} {
		var r RawPost
		if err := json.Unmarshal([]byte(bad), &r); err == nil {
			t.Errorf("Expected decode error for %s", bad)
		}
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "plain text under limit",
			content: "Short post",
			want:    "Short post",
		},
		{
			name:    "tags stripped and whitespace collapsed",
			content: "<div>\n  <p>Hello   <b>world</b></p>\n\t</div>",
			want:    "Hello world",
		},
		{
			name:    "entities decoded after stripping",
			content: "<p>Fish &amp; chips &lt;3 &quot;daily&quot;</p>",
			want:    `Fish & chips <3 "daily"`,
		},
		{
			name:    "escaped tag is not stripped",
			content: "&lt;b&gt;bold&lt;/b&gt;",
			want:    "<b>bold</b>",
		},
		{
			name:    "exactly 150 characters",
			content: strings.Repeat("a", 150),
			want:    strings.Repeat("a", 150),
		},
		{
			name:    "151 characters truncated",
			content: strings.Repeat("a", 151),
			want:    strings.Repeat("a", 150) + "...",
		},
		{
			name:    "multibyte runes counted as characters",
			content: strings.Repeat("é", 160),
			want:    strings.Repeat("é", 150) + "...",
		},
		{
			name:    "empty content",
			content: "",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Excerpt(tt.content)
			if got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestExcerptLengthProperty(t *testing.T) {
	for length := 0; length <= 400; length += 7 {
		text := strings.Repeat("x", length)
		excerpt := Excerpt("<p>" + text + "</p>")

		if n := len([]rune(excerpt)); n > 153 {
			t.Errorf("Excerpt for length %d has %d characters", length, n)
		}
		if truncated := strings.HasSuffix(excerpt, "..."); truncated != (length > 150) {
			t.Errorf("Excerpt for length %d: truncated=%v", length, truncated)
		}
		if length <= 150 && excerpt != text {
			t.Errorf("Excerpt for length %d should equal the cleaned text", length)
		}
	}
}

func TestStripTagsIsRegexBased(t *testing.T) {
	// A '>' inside an attribute ends the tag early; the rest leaks into the text.
	got := StripTags(`<a title="x>y" href="#">link</a>`)
	want := `y" href="#">link`
	if got != want {
		t.Errorf("Expected '%s', got '%s'", want, got)
	}

	if got := StripTags("a < b and c > d"); got != "a  d" {
		t.Errorf("Expected 'a  d', got '%s'", got)
	}
}

func TestReadTime(t *testing.T) {
	words := func(n int) string {
		return strings.TrimSpace(strings.Repeat("word ", n))
	}

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no words", content: "", want: "1 min read"},
		{name: "one word", content: "hello", want: "1 min read"},
		{name: "200 words", content: words(200), want: "1 min read"},
		{name: "201 words", content: words(201), want: "2 min read"},
		{name: "400 words", content: words(400), want: "2 min read"},
		{name: "401 words", content: words(401), want: "3 min read"},
		{name: "1650 words", content: words(1650), want: "9 min read"},
		{name: "tags do not count", content: "<p>" + strings.Repeat("<b>word</b> ", 200) + "</p>", want: "1 min read"},
		{name: "entities are not decoded", content: words(200) + " &amp;", want: "2 min read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReadTime(tt.content)
			if got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestFormatPublishDate(t *testing.T) {
	tests := []struct {
		published string
		want      string
	}{
		{published: "2024-03-05T10:00:00Z", want: "March 05, 2024"},
		{published: "2024-03-05T10:00:00.000-08:00", want: "March 05, 2024"},
		{published: "2023-12-31T23:30:00+05:30", want: "December 31, 2023"},
		{published: "2024-01-15T08:00:00", want: "January 15, 2024"},
		{published: "2024-07-04", want: "July 04, 2024"},
		{published: "2024-07-04 09:15:00", want: "July 04, 2024"},
		{published: "not-a-date", want: DateUnavailable},
		{published: "", want: DateUnavailable},
		{published: "2024-13-40T00:00:00Z", want: DateUnavailable},
		{published: "Tue, 05 Mar 2024 10:00:00 GMT", want: DateUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.published, func(t *testing.T) {
			got := FormatPublishDate(tt.published)
			if got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestFeaturedImage(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "double quotes", content: `<p>x</p><img src="a.png">`, want: "a.png"},
		{name: "single quotes", content: `<img alt='cover' src='b.jpg'/>`, want: "b.jpg"},
		{name: "first of several", content: `<img src="first.png"><p>text</p><img src="second.png">`, want: "first.png"},
		{name: "attributes before src", content: `<img class="wide" width="600" src="https://cdn.example.com/c.webp">`, want: "https://cdn.example.com/c.webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FeaturedImage(tt.content)
			if got == nil {
				t.Fatalf("Expected '%s', got nil", tt.want)
			}
			if *got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, *got)
			}
		})
	}

	for _, content := range []string{"", "<p>No images here</p>", "<img>", `<picture src="x.png">`} {
		if got := FeaturedImage(content); got != nil {
			t.Errorf("Expected nil for %q, got '%s'", content, *got)
		}
	}
}
