package main

import (
	"os"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
