package config

import (
	"encoding/json"
	"os"

	"github.com/grantpilot/cli/internal/flagx"
	"github.com/grantpilot/cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so the file can specify them as strings like "60s" or as
// integer nanoseconds. After parsing, set values are copied into the runtime
// Config.
type JsonConfig struct {
	APIBaseURL           *string         `json:"api_base_url"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	MaxFiles             *int            `json:"max_files"`
	MaxUploadSizeMB      *int64          `json:"max_upload_size_mb"`
	AcceptedExtensions   []string        `json:"accepted_extensions"`
	UploadResolveTimeout *timex.Duration `json:"upload_resolve_timeout"`
	EntitlementTTL       *timex.Duration `json:"entitlement_ttl"`
	CheckoutDelay        *timex.Duration `json:"checkout_delay"`
	CheckoutSecret       *string         `json:"checkout_secret"`
	ProfileTTL           *timex.Duration `json:"profile_ttl"`
	StateFile            *string         `json:"state_file"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. Absent file means no overlay; unreadable or
// invalid JSON panics (caller may recover). Only fields present in the file
// override the defaults.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.MaxFiles != nil {
		cfg.MaxFiles = *jc.MaxFiles
	}
	if jc.MaxUploadSizeMB != nil {
		cfg.MaxUploadSizeMB = *jc.MaxUploadSizeMB
	}
	if jc.AcceptedExtensions != nil {
		cfg.AcceptedExtensions = jc.AcceptedExtensions
	}
	if jc.UploadResolveTimeout != nil {
		cfg.UploadResolveTimeout = jc.UploadResolveTimeout.Duration
	}
	if jc.EntitlementTTL != nil {
		cfg.EntitlementTTL = jc.EntitlementTTL.Duration
	}
	if jc.CheckoutDelay != nil {
		cfg.CheckoutDelay = jc.CheckoutDelay.Duration
	}
	if jc.CheckoutSecret != nil {
		cfg.CheckoutSecret = *jc.CheckoutSecret
	}
	if jc.ProfileTTL != nil {
		cfg.ProfileTTL = jc.ProfileTTL.Duration
	}
	if jc.StateFile != nil {
		cfg.StateFile = *jc.StateFile
	}
}
