package mcpserver

import (
	"context"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/nutrition"
)

type stubUpstream struct {
	day   *nutrition.Day
	err   error
	calls int
}

func (s *stubUpstream) Day(ctx context.Context, date nutrition.Date) (*nutrition.Day, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.day == nil {
		return &nutrition.Day{Date: date}, nil
	}
	day := *s.day
	day.Date = date
	return &day, nil
}

func newTestServer(upstream *stubUpstream) *Server {
	svc := nutrition.NewService(func(ctx context.Context) (nutrition.Upstream, error) {
		return upstream, nil
	})
	return New(svc, slog.New(slog.DiscardHandler))
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestHandleGetDay(t *testing.T) {
	srv := newTestServer(&stubUpstream{})

	res, err := srv.handleGetDay(context.Background(),
		callRequest("get_day", map[string]any{"date": "2024-01-15"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := textOf(t, res)
	assert.Contains(t, out, "# Daily Summary for January 15, 2024")
	assert.Contains(t, out, "- **Consumed**: 0 kcal")
	assert.Contains(t, out, "- **Meals Logged**: 0")
}

func TestHandleGetDayInvalidDate(t *testing.T) {
	upstream := &stubUpstream{}
	srv := newTestServer(upstream)

	res, err := srv.handleGetDay(context.Background(),
		callRequest("get_day", map[string]any{"date": "01/15/2024"}))
	require.NoError(t, err)

	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "validation:")
	assert.Zero(t, upstream.calls, "invalid date must not reach the upstream")
}

func TestHandleGetDayAuthFailure(t *testing.T) {
	svc := nutrition.NewService(func(ctx context.Context) (nutrition.Upstream, error) {
		return nil, nutrition.Errorf(nutrition.KindAuth, "no usable MyFitnessPal session")
	})
	srv := New(svc, slog.New(slog.DiscardHandler))

	res, err := srv.handleGetDay(context.Background(),
		callRequest("get_day", map[string]any{"date": "2024-01-15"}))
	require.NoError(t, err)

	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "authentication:")
}

func TestHandleGetRange(t *testing.T) {
	srv := newTestServer(&stubUpstream{})

	res, err := srv.handleGetRange(context.Background(), callRequest("get_range", map[string]any{
		"start_date": "2024-01-10",
		"end_date":   "2024-01-12",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := textOf(t, res)
	assert.Contains(t, out, "(3 days)")
	assert.Contains(t, out, "- **2024-01-10**")
	assert.Contains(t, out, "- **2024-01-12**")
}

func TestHandleGetRangeInverted(t *testing.T) {
	upstream := &stubUpstream{}
	srv := newTestServer(upstream)

	res, err := srv.handleGetRange(context.Background(), callRequest("get_range", map[string]any{
		"start_date": "2024-01-10",
		"end_date":   "2024-01-05",
	}))
	require.NoError(t, err)

	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "validation:")
	assert.Zero(t, upstream.calls)
}

func TestHandleGetRangeMissingArgs(t *testing.T) {
	srv := newTestServer(&stubUpstream{})

	res, err := srv.handleGetRange(context.Background(),
		callRequest("get_range", map[string]any{"start_date": "2024-01-10"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleGetWater(t *testing.T) {
	srv := newTestServer(&stubUpstream{day: &nutrition.Day{WaterML: 500}})

	res, err := srv.handleGetWater(context.Background(),
		callRequest("get_water", map[string]any{"date": "2024-01-15"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), "**Amount**: 17 oz")
}

func TestHandleGetMealsDefaultsToToday(t *testing.T) {
	srv := newTestServer(&stubUpstream{})

	res, err := srv.handleGetMeals(context.Background(),
		callRequest("get_meals", map[string]any{}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), "# Meals for "+nutrition.Today().Human())
}
