package nutrition

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/credential"
)

type stubUpstream struct {
	calls int
	days  map[string]*Day
	errs  map[string]error
}

func (s *stubUpstream) Day(_ context.Context, date Date) (*Day, error) {
	s.calls++
	if err := s.errs[date.String()]; err != nil {
		return nil, err
	}
	if d, ok := s.days[date.String()]; ok {
		return d, nil
	}
	return &Day{}, nil
}

func serviceOver(up Upstream) (*Service, *int) {
	connects := 0
	svc := NewService(func(context.Context) (Upstream, error) {
		connects++
		return up, nil
	})
	return svc, &connects
}

func TestDay_EchoesDateAndZeroesEmptyDays(t *testing.T) {
	up := &stubUpstream{}
	svc, _ := serviceOver(up)

	day, err := svc.Day(context.Background(), "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", day.Date.String())
	assert.Zero(t, day.Totals.Get(NutrientCalories))
	assert.Empty(t, day.Meals)
	assert.Empty(t, day.Exercises)
}

func TestDay_Idempotent(t *testing.T) {
	up := &stubUpstream{days: map[string]*Day{
		"2024-01-15": {
			Totals: Nutrients{NutrientCalories: 1812, NutrientProtein: 130},
			Meals:  []Meal{{Name: "Breakfast"}},
		},
	}}
	svc, connects := serviceOver(up)

	first, err := svc.Day(context.Background(), "2024-01-15")
	require.NoError(t, err)
	second, err := svc.Day(context.Background(), "2024-01-15")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, *connects, "upstream client is built once")
}

func TestDay_InvalidDateFailsBeforeConnect(t *testing.T) {
	up := &stubUpstream{}
	svc, connects := serviceOver(up)

	_, err := svc.Day(context.Background(), "01/15/2024")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Zero(t, *connects, "validation must precede credential resolution")
	assert.Zero(t, up.calls)
}

func TestDay_DefaultsToToday(t *testing.T) {
	up := &stubUpstream{}
	svc, _ := serviceOver(up)

	day, err := svc.Day(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Today(), day.Date)
}

func TestDay_ConnectorFailureIsAuthAndSticky(t *testing.T) {
	connects := 0
	svc := NewService(func(context.Context) (Upstream, error) {
		connects++
		return nil, errors.New("no cookies anywhere")
	})

	_, err := svc.Day(context.Background(), "2024-01-15")
	require.Error(t, err)
	assert.Equal(t, KindAuth, KindOf(err))

	_, err = svc.Day(context.Background(), "2024-01-16")
	require.Error(t, err)
	assert.Equal(t, KindAuth, KindOf(err))
	assert.Equal(t, 1, connects, "a failed connect is not retried within the process")
}

func TestDay_UpstreamFailureIsUpstreamKind(t *testing.T) {
	up := &stubUpstream{errs: map[string]error{"2024-01-15": errors.New("HTTP 503")}}
	svc, _ := serviceOver(up)

	_, err := svc.Day(context.Background(), "2024-01-15")
	require.Error(t, err)
	assert.Equal(t, KindUpstream, KindOf(err))
	assert.NotContains(t, err.Error(), "goroutine", "no stack traces in surfaced errors")
}

func TestRange_StartAfterEndFailsBeforeAnyCall(t *testing.T) {
	up := &stubUpstream{}
	svc, connects := serviceOver(up)

	_, err := svc.Range(context.Background(), "2024-01-10", "2024-01-05")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Zero(t, *connects)
	assert.Zero(t, up.calls)
}

func TestRange_AscendingInclusiveWithZeroedGaps(t *testing.T) {
	up := &stubUpstream{days: map[string]*Day{
		"2024-01-02": {Totals: Nutrients{NutrientCalories: 2000}},
	}}
	svc, _ := serviceOver(up)

	entries, err := svc.Range(context.Background(), "2024-01-01", "2024-01-03")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "2024-01-01", entries[0].Date.String())
	assert.Equal(t, "2024-01-02", entries[1].Date.String())
	assert.Equal(t, "2024-01-03", entries[2].Date.String())

	// Gap dates are zero-valued records, not omissions.
	require.NotNil(t, entries[0].Day)
	assert.Zero(t, entries[0].Day.Totals.Get(NutrientCalories))
	assert.Equal(t, float64(2000), entries[1].Day.Totals.Get(NutrientCalories))
}

func TestRange_PerDateFailureBecomesMarker(t *testing.T) {
	up := &stubUpstream{errs: map[string]error{"2024-01-02": errors.New("rate limited")}}
	svc, _ := serviceOver(up)

	entries, err := svc.Range(context.Background(), "2024-01-01", "2024-01-03")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Nil(t, entries[1].Day)
	assert.Contains(t, entries[1].Err, "rate limited")
	require.NotNil(t, entries[2].Day, "dates after a failure are still attempted")
}

func TestRange_SingleDay(t *testing.T) {
	up := &stubUpstream{}
	svc, _ := serviceOver(up)

	entries, err := svc.Range(context.Background(), "2024-02-29", "2024-02-29")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-02-29", entries[0].Date.String())
}

func TestViews_DeriveFromDay(t *testing.T) {
	up := &stubUpstream{days: map[string]*Day{
		"2024-01-15": {
			Meals:   []Meal{{Name: "Lunch", Totals: Nutrients{NutrientCalories: 650}}},
			WaterML: 500,
			Totals:  Nutrients{NutrientCalories: 650},
			Goals:   Nutrients{NutrientCalories: 2200},
		},
	}}
	svc, _ := serviceOver(up)
	ctx := context.Background()

	date, meals, err := svc.Meals(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", date.String())
	require.Len(t, meals, 1)
	assert.Equal(t, "Lunch", meals[0].Name)

	water, err := svc.Water(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, float64(500), water.ML)
	assert.InDelta(t, 16.9, water.Ounces(), 0.1)

	macros, err := svc.Macros(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, float64(2200), macros.Goals.Get(NutrientCalories))
}

func TestDay_ExplicitCookieEndToEnd(t *testing.T) {
	t.Setenv("MFP_COOKIES", "name=abc")

	up := &stubUpstream{}
	svc := NewService(func(ctx context.Context) (Upstream, error) {
		resolver := &credential.Resolver{Payload: os.Getenv("MFP_COOKIES")}
		cred, err := resolver.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		if got := cred.Source; got != credential.SourceEnvironment {
			t.Errorf("credential source = %q", got)
		}
		return up, nil
	})

	day, err := svc.Day(context.Background(), "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", day.Date.String())
	assert.Zero(t, day.Totals.Get(NutrientCalories))
	assert.Empty(t, day.Meals)
}
