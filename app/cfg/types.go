package cfg

import "time"

type Cfg struct {
	// Server configuration
	Port        string
	DBPath      string
	CORSOrigins string

	// Blog upstream configuration
	GoogleAPIKey       string
	BloggerBlogID      string
	BloggerAPIURL      string
	BlogSource         string
	BlogFeedURL        string
	BlogRequestTimeout time.Duration

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
