package config

import (
	"os"
	"time"
)

// parseEnv overlays Config with values taken from environment variables.
// Unset or malformed values leave the current config untouched.
func parseEnv(cfg *Config) {
	if v := os.Getenv("GRANTPILOT_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("GRANTPILOT_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("GRANTPILOT_CHECKOUT_SECRET"); v != "" {
		cfg.CheckoutSecret = v
	}
	if v := os.Getenv("GRANTPILOT_STATE_FILE"); v != "" {
		cfg.StateFile = v
	}
}
