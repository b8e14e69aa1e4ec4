package config

import (
	"github.com/spf13/pflag"
)

const (
	DefaultURL   = "www.google.com"
	DefaultCount = "1"
)

// flagKeys maps flag names onto configuration keys
var flagKeys = map[string]string{
	"url":       "url",
	"count":     "count",
	"timeout":   "timeout",
	"report":    "report_dir",
	"log-level": "logger.level",
}

// RegisterFlags defines the command-line flags. Every flag takes a value so
// that a well-formed command line always has an odd argument count.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("url", "U", DefaultURL, "URL of the target server")
	fs.StringArrayP("header", "H", nil, "extra HTTP header to add to the GET request, can be repeated")
	fs.StringP("count", "n", DefaultCount, "number of HTTP requests to average")
	fs.Duration("timeout", 0, "per-request timeout, 0 disables it")
	fs.String("report", "", "write a summary and timing chart under this directory")
	fs.String("log-level", "warn", "log level (debug, info, warn, error)")
	fs.String("config", "", "path to a linkstat.yaml configuration file")
}
