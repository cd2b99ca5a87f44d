package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/credential"
)

func TestCommandTree(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["export-cookies"])
}

func TestExportCookiesNoSession(t *testing.T) {
	// An empty home holds no browser profiles, so the fallback chain
	// exhausts deterministically.
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", home)
	t.Setenv("LOCALAPPDATA", home)
	t.Setenv("MFP_COOKIES", "")
	t.Setenv("MFP_BROWSERS", "chrome,firefox")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"export-cookies", "--output", home + "/.env"})
	err := rootCmd.Execute()

	require.Error(t, err)
	var notFound *credential.NotFoundError
	assert.True(t, errors.As(err, &notFound), "expected NotFoundError, got %v", err)
}
