// Package cli defines the mcp-myfitnesspal command tree: the MCP server
// (default command) and the cookie export utility.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/browsercookie"
	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/config"
	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/credential"
)

var rootCmd = &cobra.Command{
	Use:   "mcp-myfitnesspal",
	Short: "MCP server exposing MyFitnessPal nutrition data",
	Long: `mcp-myfitnesspal serves MyFitnessPal nutrition, exercise and water data
over the Model Context Protocol, authenticating with session cookies from
the MFP_COOKIES environment variable or a logged-in local browser.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger. Stdout carries the MCP protocol on
// the stdio transport, so logs always go to stderr.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newResolver(cfg *config.Config, logger *slog.Logger) *credential.Resolver {
	var readers []browsercookie.Reader
	for _, b := range cfg.Browsers {
		readers = append(readers, browsercookie.ReaderFor(b))
	}
	return &credential.Resolver{
		Payload: cfg.Cookies,
		Readers: readers,
		Timeout: cfg.Timeout,
		Logger:  logger,
	}
}
