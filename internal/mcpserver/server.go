// Package mcpserver exposes nutrition data over the Model Context Protocol.
// Six read-only tools, markdown responses. Stdio is the default transport;
// a streamable HTTP listener is used when an address is configured.
package mcpserver

import (
	"log"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/nutrition"
)

const (
	serverName    = "MyFitnessPal"
	serverVersion = "1.0.0"

	instructions = `Retrieves nutrition and fitness data from MyFitnessPal.
Requires a logged-in MyFitnessPal browser session or an MFP_COOKIES value.
All data is returned as human-readable markdown summaries.
Date parameters use YYYY-MM-DD format and default to today.`
)

// Server wires the nutrition service into an MCP tool surface.
type Server struct {
	mcp *server.MCPServer
	svc *nutrition.Service
	log *slog.Logger
}

// New registers the tool set against svc.
func New(svc *nutrition.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		mcp: server.NewMCPServer(
			serverName,
			serverVersion,
			server.WithInstructions(instructions),
		),
		svc: svc,
		log: logger,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	dateArg := mcp.WithString("date",
		mcp.Description("Date in YYYY-MM-DD format (defaults to today)"))

	s.mcp.AddTool(mcp.NewTool("get_day",
		mcp.WithDescription("Get daily nutrition overview: calories consumed/remaining, macro breakdown, water, and goals."),
		dateArg,
	), s.handleGetDay)

	s.mcp.AddTool(mcp.NewTool("get_meals",
		mcp.WithDescription("Get detailed meal-by-meal breakdown with all foods, servings, and calories."),
		dateArg,
	), s.handleGetMeals)

	s.mcp.AddTool(mcp.NewTool("get_exercises",
		mcp.WithDescription("Get exercise activities: cardio (duration, calories) and strength (sets, reps, weight)."),
		dateArg,
	), s.handleGetExercises)

	s.mcp.AddTool(mcp.NewTool("get_macros",
		mcp.WithDescription("Get comprehensive macro and micronutrient breakdown with all tracked nutrients."),
		dateArg,
	), s.handleGetMacros)

	s.mcp.AddTool(mcp.NewTool("get_water",
		mcp.WithDescription("Get water consumption for a specific day."),
		dateArg,
	), s.handleGetWater)

	s.mcp.AddTool(mcp.NewTool("get_range",
		mcp.WithDescription("Get aggregate nutrition data over a date range with a per-day breakdown."),
		mcp.WithString("start_date", mcp.Required(),
			mcp.Description("Start date in YYYY-MM-DD format")),
		mcp.WithString("end_date", mcp.Required(),
			mcp.Description("End date in YYYY-MM-DD format")),
	), s.handleGetRange)
}

// ServeStdio blocks serving MCP over stdin/stdout. Protocol errors go to
// stderr; stdout belongs to the protocol.
func (s *Server) ServeStdio() error {
	errLogger := log.New(os.Stderr, "[mcp-myfitnesspal] ", log.LstdFlags)
	return server.ServeStdio(s.mcp, server.WithErrorLogger(errLogger))
}

// ServeHTTP blocks serving the streamable HTTP transport on addr.
func (s *Server) ServeHTTP(addr string) error {
	s.log.Info("starting streamable HTTP server", "addr", addr)
	return server.NewStreamableHTTPServer(s.mcp).Start(addr)
}
