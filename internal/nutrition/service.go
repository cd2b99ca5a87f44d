package nutrition

import (
	"context"
	"sync"
)

// Upstream is the capability the facade depends on: fetch one diary date.
// The production implementation lives in internal/mfp; tests stub it.
type Upstream interface {
	Day(ctx context.Context, date Date) (*Day, error)
}

// Connector builds the authenticated upstream client. It runs at most once
// per Service; the typical implementation resolves a credential and dials
// MyFitnessPal.
type Connector func(ctx context.Context) (Upstream, error)

// Service is the query facade. Construct one per process with NewService;
// the upstream client is created lazily on first use and shared afterwards,
// including a failed creation (authentication is not retried within a
// process).
type Service struct {
	connect Connector

	once       sync.Once
	upstream   Upstream
	connectErr error
}

func NewService(connect Connector) *Service {
	return &Service{connect: connect}
}

func (s *Service) client(ctx context.Context) (Upstream, error) {
	s.once.Do(func() {
		up, err := s.connect(ctx)
		if err != nil {
			s.connectErr = WrapError(KindAuth, "no usable MyFitnessPal session", err)
			return
		}
		s.upstream = up
	})
	if s.connectErr != nil {
		return nil, s.connectErr
	}
	return s.upstream, nil
}

// Day returns the full snapshot for one date. The returned record's date
// always echoes the request date, including for dates with nothing logged.
func (s *Service) Day(ctx context.Context, dateStr string) (*Day, error) {
	date, err := parseOrToday(dateStr)
	if err != nil {
		return nil, err
	}
	return s.fetchDay(ctx, date)
}

// Meals returns the per-meal breakdown for one date.
func (s *Service) Meals(ctx context.Context, dateStr string) (Date, []Meal, error) {
	day, err := s.Day(ctx, dateStr)
	if err != nil {
		return Date{}, nil, err
	}
	return day.Date, day.Meals, nil
}

// Exercises returns the exercise groups logged for one date.
func (s *Service) Exercises(ctx context.Context, dateStr string) (Date, []ExerciseGroup, error) {
	day, err := s.Day(ctx, dateStr)
	if err != nil {
		return Date{}, nil, err
	}
	return day.Date, day.Exercises, nil
}

// Water returns the water volume logged for one date.
func (s *Service) Water(ctx context.Context, dateStr string) (WaterReport, error) {
	day, err := s.Day(ctx, dateStr)
	if err != nil {
		return WaterReport{}, err
	}
	return WaterReport{Date: day.Date, ML: day.WaterML}, nil
}

// Macros returns the nutrient totals-vs-goals view for one date.
func (s *Service) Macros(ctx context.Context, dateStr string) (MacroReport, error) {
	day, err := s.Day(ctx, dateStr)
	if err != nil {
		return MacroReport{}, err
	}
	return MacroReport{Date: day.Date, Totals: day.Totals, Goals: day.Goals}, nil
}

// Range returns one entry per date from start to end inclusive, ascending.
// Validation happens before any credential resolution or upstream call.
// A single date's failure is recorded in that entry's Err and the remaining
// dates are still fetched; only authentication failures abort the range.
func (s *Service) Range(ctx context.Context, startStr, endStr string) ([]RangeEntry, error) {
	start, err := ParseDate(startStr)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, Errorf(KindValidation, "start date %s is after end date %s", start, end)
	}

	if _, err := s.client(ctx); err != nil {
		return nil, err
	}

	var out []RangeEntry
	for d := start; !d.After(end); d = d.Next() {
		if err := ctx.Err(); err != nil {
			return nil, WrapError(KindUnknown, "range query interrupted", err)
		}
		day, err := s.fetchDay(ctx, d)
		if err != nil {
			if KindOf(err) == KindAuth {
				return nil, err
			}
			out = append(out, RangeEntry{Date: d, Err: err.Error()})
			continue
		}
		out = append(out, RangeEntry{Date: d, Day: day})
	}
	return out, nil
}

func (s *Service) fetchDay(ctx context.Context, date Date) (*Day, error) {
	up, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	day, err := up.Day(ctx, date)
	if err != nil {
		return nil, WrapError(KindUpstream, "fetching diary for "+date.String(), err)
	}
	if day == nil {
		day = &Day{}
	}
	day.Date = date
	return day, nil
}

func parseOrToday(dateStr string) (Date, error) {
	if dateStr == "" {
		return Today(), nil
	}
	return ParseDate(dateStr)
}
