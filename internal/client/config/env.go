package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// dotEnvFiles are loaded (when present) before reading the environment.
// Variables already set in the process environment are not overridden.
var dotEnvFiles = []string{".env"}

// parseEnv overlays cfg with ADMIN_* environment variables.
//
//	ADMIN_API_BASE_URL       API base URL
//	ADMIN_ORIGIN             origin the API base is inferred from
//	ADMIN_UPLOADS_BASE_URL   uploads base (http(s):// or s3://bucket/prefix)
//	ADMIN_REQUEST_TIMEOUT    request timeout ("15s")
//	ADMIN_REFRESH_INTERVAL   report auto-refresh interval ("15s")
//	ADMIN_SESSION_DB         SQLite file holding the session
//	ADMIN_LOG_LEVEL          debug|info|warn|error
//	ADMIN_S3_REGION, ADMIN_S3_ENDPOINT, ADMIN_S3_ACCESS_KEY, ADMIN_S3_SECRET_KEY
func parseEnv(cfg *Config) {
	for _, f := range dotEnvFiles {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	setString(&cfg.APIBaseURL, "ADMIN_API_BASE_URL")
	setString(&cfg.Origin, "ADMIN_ORIGIN")
	setString(&cfg.UploadsBaseURL, "ADMIN_UPLOADS_BASE_URL")
	setDuration(&cfg.RequestTimeout, "ADMIN_REQUEST_TIMEOUT")
	setDuration(&cfg.RefreshInterval, "ADMIN_REFRESH_INTERVAL")
	setString(&cfg.SessionDBPath, "ADMIN_SESSION_DB")
	setString(&cfg.LogLevel, "ADMIN_LOG_LEVEL")
	setString(&cfg.S3Region, "ADMIN_S3_REGION")
	setString(&cfg.S3BaseEndpoint, "ADMIN_S3_ENDPOINT")
	setString(&cfg.S3AccessKey, "ADMIN_S3_ACCESS_KEY")
	setString(&cfg.S3SecretKey, "ADMIN_S3_SECRET_KEY")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// setDuration accepts a Go duration string or a bare number of seconds.
func setDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(n) * time.Second
	}
}
