package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/browsercookie"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MFP_COOKIES", "HOST", "PORT", "MFP_BROWSERS", "MFP_TIMEOUT", "MFP_DEBUG"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Cookies)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Empty(t, cfg.Port)
	assert.Empty(t, cfg.HTTPAddr(), "no PORT means stdio transport")
	assert.Nil(t, cfg.Browsers)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.False(t, cfg.Debug)
}

func TestLoadHTTPAddr(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8081", cfg.HTTPAddr())
}

func TestLoadBrowsers(t *testing.T) {
	clearEnv(t)
	t.Setenv("MFP_BROWSERS", "firefox, chrome")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []browsercookie.Browser{browsercookie.BrowserFirefox, browsercookie.BrowserChrome}, cfg.Browsers)
}

func TestLoadBrowsersUnknown(t *testing.T) {
	clearEnv(t)
	t.Setenv("MFP_BROWSERS", "netscape")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "netscape")
}

func TestLoadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("MFP_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Timeout)

	t.Setenv("MFP_TIMEOUT", "soon")
	_, err = Load()
	require.Error(t, err)
}

func TestLoadDebug(t *testing.T) {
	clearEnv(t)
	t.Setenv("MFP_DEBUG", "1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Debug)

	t.Setenv("MFP_DEBUG", "false")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
}
