package blog

import (
	"bytes"
	"encoding/json"
	"time"
)

// RawPost is an upstream post record. Pointer fields distinguish an absent
// value from an empty one so defaults only apply when the field is missing.
type RawPost struct {
	ID        string     `json:"id"`
	Title     *string    `json:"title"`
	Content   string     `json:"content"`
	Published string     `json:"published"`
	URL       string     `json:"url"`
	Author    *RawAuthor `json:"author"`
	Labels    []string   `json:"labels"`

	// Set when the upstream sent an explicit null. Such posts cannot be
	// normalized and are dropped.
	nullContent bool
	nullAuthor  bool
}

func (p *RawPost) UnmarshalJSON(data []byte) error {
	type plain RawPost
	var fields struct {
		plain
		Content json.RawMessage `json:"content"`
		Author  json.RawMessage `json:"author"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*p = RawPost(fields.plain)

	if isJSONNull(fields.Content) {
		p.nullContent = true
	} else if fields.Content != nil {
		if err := json.Unmarshal(fields.Content, &p.Content); err != nil {
			return err
		}
	}

	if isJSONNull(fields.Author) {
		p.nullAuthor = true
	} else if fields.Author != nil {
		if err := json.Unmarshal(fields.Author, &p.Author); err != nil {
			return err
		}
	}

	return nil
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

type RawAuthor struct {
	DisplayName *string `json:"displayName"`
}

// Post is the display-ready representation served to clients.
type Post struct {
	ID            string  `json:"id" yaml:"id"`
	Title         string  `json:"title" yaml:"title"`
	Excerpt       string  `json:"excerpt" yaml:"excerpt"`
	Content       string  `json:"content" yaml:"content"`
	PublishDate   string  `json:"publishDate" yaml:"publishDate"`
	ReadTime      string  `json:"readTime" yaml:"readTime"`
	Category      string  `json:"category" yaml:"category"`
	URL           string  `json:"url" yaml:"url"`
	Author        string  `json:"author" yaml:"author"`
	FeaturedImage *string `json:"featuredImage" yaml:"featuredImage"`
}

// FetchResult is either Success or Failure.
type FetchResult interface {
	isFetchResult()
}

type Success struct {
	Posts       []Post
	TotalPosts  int
	LastFetched time.Time
	IsFallback  bool
}

// Failure carries a human-readable message for the caller. Kind is only
// used for logging.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (Success) isFetchResult() {}
func (Failure) isFetchResult() {}

type FailureKind string

const (
	FailureConfigMissing  FailureKind = "config_missing"
	FailureForbidden      FailureKind = "forbidden"
	FailureNotFound       FailureKind = "not_found"
	FailureUpstreamStatus FailureKind = "upstream_status"
	FailureTimeout        FailureKind = "timeout"
	FailureNetwork        FailureKind = "network_error"
	FailureUnexpected     FailureKind = "unexpected"
)
