package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/config"
	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/mcpserver"
	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/mfp"
	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/nutrition"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server (stdio, or streamable HTTP when PORT is set)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Debug)

	// The session is resolved lazily on the first tool call, so the server
	// starts even when no browser session exists yet.
	resolver := newResolver(cfg, logger)
	connect := func(ctx context.Context) (nutrition.Upstream, error) {
		cred, err := resolver.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		logger.Info("resolved MyFitnessPal session", "source", cred.Source, "cookies", len(cred.Cookies))

		client, err := mfp.New(cred)
		if err != nil {
			return nil, err
		}
		if err := client.Authenticate(ctx); err != nil {
			return nil, err
		}
		return client, nil
	}

	srv := mcpserver.New(nutrition.NewService(connect), logger)
	if addr := cfg.HTTPAddr(); addr != "" {
		return srv.ServeHTTP(addr)
	}
	return srv.ServeStdio()
}
