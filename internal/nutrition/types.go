// Package nutrition defines the query facade over a MyFitnessPal upstream
// client: normalized day records, the error taxonomy surfaced to callers,
// and the date-parameterized operations exposed as MCP tools.
package nutrition

import "time"

// Nutrients maps nutrient names ("calories", "carbohydrates", ...) to
// amounts. Units follow MyFitnessPal's conventions: kcal for calories,
// grams for macros, milligrams for sodium/potassium/cholesterol.
type Nutrients map[string]float64

// Nutrient names used across records. Exercise entries additionally use
// "calories burned", "minutes", "sets", "reps/set" and "weight/set".
const (
	NutrientCalories       = "calories"
	NutrientCarbohydrates  = "carbohydrates"
	NutrientFat            = "fat"
	NutrientProtein        = "protein"
	NutrientFiber          = "fiber"
	NutrientSugar          = "sugar"
	NutrientSodium         = "sodium"
	NutrientCaloriesBurned = "calories burned"
	NutrientMinutes        = "minutes"
)

// Get returns the named nutrient, zero when absent.
func (n Nutrients) Get(name string) float64 {
	if n == nil {
		return 0
	}
	return n[name]
}

// Day is a read-only snapshot of one diary date. A date with nothing logged
// is a valid Day with zeroed totals and empty slices, not an error.
type Day struct {
	Date      Date
	Meals     []Meal
	Exercises []ExerciseGroup
	Totals    Nutrients
	Goals     Nutrients
	WaterML   float64
	Complete  bool
}

// Meal is one named diary meal (Breakfast, Lunch, ...) with its entries.
type Meal struct {
	Name    string
	Entries []FoodEntry
	Totals  Nutrients
}

// FoodEntry is one logged food with its serving and nutrition.
type FoodEntry struct {
	Name      string
	Quantity  float64
	Unit      string
	Nutrition Nutrients
}

// ExerciseGroup holds one exercise category's entries ("cardiovascular" or
// "strength").
type ExerciseGroup struct {
	Name    string
	Entries []ExerciseEntry
}

// ExerciseEntry is one logged exercise. Cardio entries carry "minutes" and
// "calories burned"; strength entries carry "sets", "reps/set" and
// "weight/set".
type ExerciseEntry struct {
	Name      string
	Nutrition Nutrients
}

// WaterReport is the water volume logged for a date.
type WaterReport struct {
	Date Date
	ML   float64
}

// Ounces converts the logged milliliters to US fluid ounces.
func (w WaterReport) Ounces() float64 { return w.ML / 29.5735 }

// Cups converts the logged milliliters to US cups.
func (w WaterReport) Cups() float64 { return w.ML / 236.588 }

// MacroReport is the full nutrient totals-vs-goals view for a date.
type MacroReport struct {
	Date   Date
	Totals Nutrients
	Goals  Nutrients
}

// RangeEntry is one date's slot in a range query. Day is nil and Err is set
// when that date's fetch failed; the rest of the range is still returned.
type RangeEntry struct {
	Date Date
	Day  *Day
	Err  string
}

// DateLayout is the wire format for all date parameters.
const DateLayout = "2006-01-02"

// Date is a calendar date without time-of-day or zone.
type Date struct {
	Year  int
	Month time.Month
	Dom   int
}

// ParseDate validates and parses an ISO-8601 calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, Errorf(KindValidation, "invalid date %q: use YYYY-MM-DD", s)
	}
	return dateOf(t), nil
}

// Today returns the current local calendar date.
func Today() Date { return dateOf(time.Now()) }

func dateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Dom: d}
}

func (d Date) String() string { return d.time().Format(DateLayout) }

// Human formats the date for display, e.g. "January 15, 2024".
func (d Date) Human() string { return d.time().Format("January 2, 2006") }

// Next returns the following calendar date.
func (d Date) Next() Date {
	return dateOf(d.time().AddDate(0, 0, 1))
}

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool { return d.time().After(o.time()) }

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Dom, 0, 0, 0, 0, time.UTC)
}
