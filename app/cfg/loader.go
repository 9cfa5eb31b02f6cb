package cfg

import (
	"cmp"
	"fmt"
	"log/slog"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

const (
	BlogSourceAPI  = "api"
	BlogSourceFeed = "feed"
)

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Server configuration
	Port        string `long:"port" env:"PORT" default:"8000" description:"HTTP server port"`
	DBPath      string `long:"db-path" env:"DB_PATH" default:"./portfolio.db" description:"SQLite database file for contact messages"`
	CORSOrigins string `long:"cors-origins" env:"CORS_ORIGINS" default:"*" description:"Value of the Access-Control-Allow-Origin header"`

	// Blog upstream configuration
	GoogleAPIKey       string `long:"google-api-key" env:"GOOGLE_API_KEY" description:"Google API key for the Blogger API (optional)"`
	BloggerBlogID      string `long:"blogger-blog-id" env:"BLOGGER_BLOG_ID" description:"Blogger blog identifier (optional)"`
	BloggerAPIURL      string `long:"blogger-api-url" env:"BLOGGER_API_URL" default:"https://www.googleapis.com/blogger/v3/blogs" description:"Base URL of the Blogger blogs API"`
	BlogSource         string `long:"blog-source" env:"BLOG_SOURCE" default:"api" choice:"api" choice:"feed" description:"Upstream used for blog posts"`
	BlogFeedURL        string `long:"blog-feed-url" env:"BLOG_FEED_URL" description:"Public Atom/RSS feed of the blog, used with --blog-source=feed"`
	BlogRequestTimeout int    `long:"blog-request-timeout" env:"BLOG_REQUEST_TIMEOUT" default:"10" description:"Upstream blog request timeout in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Portfolio API/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses command-line flags and environment variables. It returns
// (nil, nil) when help was requested.
func Load() (*Cfg, error) {
	return parse(nil)
}

func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.BlogRequestTimeout <= 0 {
		return nil, fmt.Errorf("blog request timeout must be positive, got %d", raw.BlogRequestTimeout)
	}

	cfg := &Cfg{
		Port:               raw.Port,
		DBPath:             raw.DBPath,
		CORSOrigins:        raw.CORSOrigins,
		GoogleAPIKey:       raw.GoogleAPIKey,
		BloggerBlogID:      raw.BloggerBlogID,
		BloggerAPIURL:      raw.BloggerAPIURL,
		BlogSource:         raw.BlogSource,
		BlogFeedURL:        raw.BlogFeedURL,
		BlogRequestTimeout: time.Duration(raw.BlogRequestTimeout) * time.Second,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return err
		}
		time.Local = loc
	}
	return nil
}
