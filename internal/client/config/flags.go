package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/rentadmin/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   API base URL
//	-o string   origin the API base is inferred from
//	-u string   uploads base URL
//	-r int      report auto-refresh interval (seconds)
//	-t int      request timeout (seconds)
//	-d string   session database file
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config does not
// trip this flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-o", "-u", "-r", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.Origin, "o", cfg.Origin, "console origin (API base defaults to <origin>/api)")
	fs.StringVar(&cfg.UploadsBaseURL, "u", cfg.UploadsBaseURL, "uploads base URL (http(s):// or s3://bucket/prefix)")
	refresh := fs.Int("r", int(cfg.RefreshInterval.Seconds()), "report auto-refresh interval (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.SessionDBPath, "d", cfg.SessionDBPath, "session database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RefreshInterval = time.Duration(*refresh) * time.Second
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
