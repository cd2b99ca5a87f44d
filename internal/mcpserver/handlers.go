package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/nutrition"
)

// toolError renders a failed call as a tool-level error result so the model
// sees the category and message. Protocol-level errors are reserved for
// transport failures.
func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	s.log.Warn("tool call failed", "tool", tool, "kind", nutrition.KindOf(err), "error", err)
	return mcp.NewToolResultError(err.Error())
}

func (s *Server) handleGetDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := s.svc.Day(ctx, req.GetString("date", ""))
	if err != nil {
		return s.toolError("get_day", err), nil
	}
	return mcp.NewToolResultText(formatDailySummary(day)), nil
}

func (s *Server) handleGetMeals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, meals, err := s.svc.Meals(ctx, req.GetString("date", ""))
	if err != nil {
		return s.toolError("get_meals", err), nil
	}
	return mcp.NewToolResultText(formatMeals(date, meals)), nil
}

func (s *Server) handleGetExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, groups, err := s.svc.Exercises(ctx, req.GetString("date", ""))
	if err != nil {
		return s.toolError("get_exercises", err), nil
	}
	return mcp.NewToolResultText(formatExercises(date, groups)), nil
}

func (s *Server) handleGetMacros(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.svc.Macros(ctx, req.GetString("date", ""))
	if err != nil {
		return s.toolError("get_macros", err), nil
	}
	return mcp.NewToolResultText(formatMacros(report)), nil
}

func (s *Server) handleGetWater(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.svc.Water(ctx, req.GetString("date", ""))
	if err != nil {
		return s.toolError("get_water", err), nil
	}
	return mcp.NewToolResultText(formatWater(report)), nil
}

func (s *Server) handleGetRange(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := req.RequireString("start_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := req.RequireString("end_date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries, err := s.svc.Range(ctx, start, end)
	if err != nil {
		return s.toolError("get_range", err), nil
	}
	return mcp.NewToolResultText(formatRange(entries)), nil
}
