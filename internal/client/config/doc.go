// Package config loads runtime configuration for the GrantPilot CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv): GRANTPILOT_API_URL,
//     GRANTPILOT_REQUEST_TIMEOUT, GRANTPILOT_CHECKOUT_SECRET,
//     GRANTPILOT_STATE_FILE.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the backend API
//	-t duration   per-request timeout, e.g. "30s"
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "60s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "request_timeout": "60s",
//	  "max_files": 10,
//	  "max_upload_size_mb": 50,
//	  "accepted_extensions": [".pdf", ".doc", ".docx", ".pptx", ".txt"],
//	  "upload_resolve_timeout": "2m",
//	  "entitlement_ttl": "720h",
//	  "checkout_delay": "1.5s",
//	  "profile_ttl": "24h"
//	}
package config
