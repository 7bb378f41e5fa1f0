package config

import "time"

// Config holds runtime settings for the GrantPilot CLI.
type Config struct {
	// APIBaseURL is the backend base URL, no trailing slash required.
	APIBaseURL string

	// RequestTimeout bounds each upload/ping request.
	RequestTimeout time.Duration

	// Upload admission limits.
	MaxFiles           int
	MaxUploadSizeMB    int64
	AcceptedExtensions []string

	// UploadResolveTimeout is how long a candidate may sit in "uploading"
	// before the sweeper forces it to a terminal error.
	UploadResolveTimeout time.Duration

	// EntitlementTTL bounds how long an unlocked stage stays valid.
	EntitlementTTL time.Duration

	// CheckoutDelay is the emulated processing time of the demo checkout.
	CheckoutDelay time.Duration

	// CheckoutSecret signs local entitlement records. Demo-grade only.
	CheckoutSecret string

	// ProfileTTL expires cached profile state.
	ProfileTTL time.Duration

	// StateFile is the SQLite state file name, resolved under the state dir.
	StateFile string
}

// LoadDefaults populates c with sensible defaults. The upload limits mirror
// what the backend's vault accepts.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 60 * time.Second
	c.MaxFiles = 10
	c.MaxUploadSizeMB = 50
	c.AcceptedExtensions = []string{".pdf", ".doc", ".docx", ".pptx", ".txt"}
	c.UploadResolveTimeout = 2 * time.Minute
	c.EntitlementTTL = 30 * 24 * time.Hour
	c.CheckoutDelay = 1500 * time.Millisecond
	c.CheckoutSecret = "demo-checkout-secret"
	c.ProfileTTL = 24 * time.Hour
	c.StateFile = "grantpilot.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
