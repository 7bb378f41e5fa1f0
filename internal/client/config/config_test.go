package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10, cfg.MaxFiles)
	assert.Equal(t, int64(50), cfg.MaxUploadSizeMB)
	assert.Equal(t, []string{".pdf", ".doc", ".docx", ".pptx", ".txt"}, cfg.AcceptedExtensions)
	assert.Equal(t, 2*time.Minute, cfg.UploadResolveTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.CheckoutDelay)
	assert.Equal(t, 24*time.Hour, cfg.ProfileTTL)
	assert.Equal(t, "grantpilot.db", cfg.StateFile)
}

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := `{
		"api_base_url": "https://api.example.com",
		"request_timeout": "30s",
		"max_files": 5,
		"checkout_delay": "2s"
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"grantpilot", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.MaxFiles)
	assert.Equal(t, 2*time.Second, cfg.CheckoutDelay)
	// not present in the file, defaults survive
	assert.Equal(t, int64(50), cfg.MaxUploadSizeMB)
	assert.Equal(t, "grantpilot.db", cfg.StateFile)
}

func TestParseJson_NoFlag(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"grantpilot"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("GRANTPILOT_API_URL", "https://env.example.com")
	t.Setenv("GRANTPILOT_REQUEST_TIMEOUT", "90s")
	t.Setenv("GRANTPILOT_STATE_FILE", "alt.db")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://env.example.com", cfg.APIBaseURL)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "alt.db", cfg.StateFile)
}

func TestParseEnv_MalformedDuration(t *testing.T) {
	t.Setenv("GRANTPILOT_REQUEST_TIMEOUT", "not-a-duration")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"grantpilot", "-a", "https://flag.example.com", "-t", "15s"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "https://flag.example.com", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_base_url": "https://json.example.com"}`), 0o600))

	t.Setenv("GRANTPILOT_API_URL", "https://env.example.com")

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"grantpilot", "-c", path}

	cfg := LoadConfig()

	// env beats JSON
	assert.Equal(t, "https://env.example.com", cfg.APIBaseURL)
}
