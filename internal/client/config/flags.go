package config

import (
	"flag"
	"os"
	"time"

	"github.com/grantpilot/cli/internal/flagx"
)

// parseFlags overlays Config with command-line flags. Only the flags owned
// by this stage are parsed; the rest of os.Args is filtered out so the JSON
// config flags do not cause parse errors here.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	apiBaseURL := fs.String("a", "", "backend API base URL")
	requestTimeout := fs.Duration("t", 0, "per-request timeout")

	_ = fs.Parse(args)

	if *apiBaseURL != "" {
		cfg.APIBaseURL = *apiBaseURL
	}
	if *requestTimeout > time.Duration(0) {
		cfg.RequestTimeout = *requestTimeout
	}
}
