package config

import (
	"strings"
	"time"
)

const (
	DefaultAPIBaseURL = "http://localhost:5000/api"
	apiPathSuffix     = "/api"
)

// Config holds runtime settings for the admin console.
//
// APIBaseURL is resolved by Resolve: an explicit value wins, otherwise it is
// derived from Origin, otherwise DefaultAPIBaseURL. UploadsBaseURL may be an
// http(s) URL or s3://bucket/prefix, in which case the S3* fields are used to
// presign downloads.
type Config struct {
	APIBaseURL      string
	Origin          string
	UploadsBaseURL  string
	RequestTimeout  time.Duration
	RefreshInterval time.Duration
	SearchDebounce  time.Duration
	SessionDBPath   string
	LogLevel        string

	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.RequestTimeout = 15 * time.Second
	c.RefreshInterval = 15 * time.Second
	c.SearchDebounce = 350 * time.Millisecond
	c.SessionDBPath = "console.db"
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// Resolve fills in the derived URLs. It is idempotent.
func (c *Config) Resolve() {
	switch {
	case c.APIBaseURL != "":
	case c.Origin != "":
		c.APIBaseURL = strings.TrimRight(c.Origin, "/") + apiPathSuffix
	default:
		c.APIBaseURL = DefaultAPIBaseURL
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")

	if c.UploadsBaseURL == "" {
		c.UploadsBaseURL = strings.TrimSuffix(c.APIBaseURL, apiPathSuffix) + "/uploads"
	}
}

// LoadConfig applies defaults, then environment (.env included), then an
// optional JSON/YAML file, then command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	cfg.Resolve()
	return cfg
}
