package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/rentadmin/internal/flagx"
	"github.com/dmitrijs2005/rentadmin/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the DTO for config files. Intervals use timex.Duration so
// they can be written as "15s" or as integer nanoseconds.
type FileConfig struct {
	APIBaseURL      string         `json:"api_base_url" yaml:"api_base_url"`
	Origin          string         `json:"origin" yaml:"origin"`
	UploadsBaseURL  string         `json:"uploads_base_url" yaml:"uploads_base_url"`
	RequestTimeout  timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	RefreshInterval timex.Duration `json:"refresh_interval" yaml:"refresh_interval"`
	SessionDBPath   string         `json:"session_db" yaml:"session_db"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
	S3Region        string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_endpoint" yaml:"s3_endpoint"`
	S3AccessKey     string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey     string         `json:"s3_secret_key" yaml:"s3_secret_key"`
}

// parseFile overlays cfg with the file named by -c/-config. The format is
// picked by extension: .yaml/.yml use YAML, anything else JSON. Only
// non-empty values override. Read or decode errors panic, like flag errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc FileConfig) apply(cfg *Config) {
	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	overlay(&cfg.APIBaseURL, fc.APIBaseURL)
	overlay(&cfg.Origin, fc.Origin)
	overlay(&cfg.UploadsBaseURL, fc.UploadsBaseURL)
	overlay(&cfg.SessionDBPath, fc.SessionDBPath)
	overlay(&cfg.LogLevel, fc.LogLevel)
	overlay(&cfg.S3Region, fc.S3Region)
	overlay(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	overlay(&cfg.S3AccessKey, fc.S3AccessKey)
	overlay(&cfg.S3SecretKey, fc.S3SecretKey)

	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RefreshInterval.Duration > 0 {
		cfg.RefreshInterval = fc.RefreshInterval.Duration
	}
}
