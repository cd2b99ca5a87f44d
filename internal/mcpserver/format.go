package mcpserver

import (
	"fmt"
	"strings"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/nutrition"
)

// Markdown renderers for tool output. The audience is a language model, so
// the shape is stable headed sections with bold labels rather than tables.

const (
	mlPerOunce = 29.5735
	mlPerCup   = 236.588
)

func formatDailySummary(day *nutrition.Day) string {
	totals, goals := day.Totals, day.Goals

	calories := totals.Get(nutrition.NutrientCalories)
	calorieGoal := goals.Get(nutrition.NutrientCalories)

	var exerciseCount int
	var exerciseMinutes, exerciseCalories float64
	for _, group := range day.Exercises {
		for _, entry := range group.Entries {
			exerciseCount++
			exerciseMinutes += entry.Nutrition.Get(nutrition.NutrientMinutes)
			exerciseCalories += entry.Nutrition.Get(nutrition.NutrientCaloriesBurned)
		}
	}

	complete := "No"
	if day.Complete {
		complete = "Yes"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Daily Summary for %s\n\n", day.Date.Human())

	b.WriteString("## Calories\n")
	fmt.Fprintf(&b, "- **Consumed**: %.0f kcal\n", calories)
	fmt.Fprintf(&b, "- **Goal**: %.0f kcal\n", calorieGoal)
	fmt.Fprintf(&b, "- **Remaining**: %.0f kcal\n\n", calorieGoal-calories)

	b.WriteString("## Macronutrients\n")
	fmt.Fprintf(&b, "- **Carbohydrates**: %.0fg / %.0fg\n",
		totals.Get(nutrition.NutrientCarbohydrates), goals.Get(nutrition.NutrientCarbohydrates))
	fmt.Fprintf(&b, "- **Fat**: %.0fg / %.0fg\n",
		totals.Get(nutrition.NutrientFat), goals.Get(nutrition.NutrientFat))
	fmt.Fprintf(&b, "- **Protein**: %.0fg / %.0fg\n\n",
		totals.Get(nutrition.NutrientProtein), goals.Get(nutrition.NutrientProtein))

	b.WriteString("## Exercise\n")
	fmt.Fprintf(&b, "- **Activities**: %d\n", exerciseCount)
	fmt.Fprintf(&b, "- **Duration**: %.0f minutes\n", exerciseMinutes)
	fmt.Fprintf(&b, "- **Calories Burned**: %.0f kcal\n\n", exerciseCalories)

	b.WriteString("## Water Intake\n")
	fmt.Fprintf(&b, "- **Amount**: %.0f oz (%.1f cups, %.0f ml)\n\n",
		day.WaterML/mlPerOunce, day.WaterML/mlPerCup, day.WaterML)

	b.WriteString("## Status\n")
	fmt.Fprintf(&b, "- **Day Complete**: %s\n", complete)
	fmt.Fprintf(&b, "- **Meals Logged**: %d\n", len(day.Meals))

	return b.String()
}

func formatMeals(date nutrition.Date, meals []nutrition.Meal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Meals for %s\n\n", date.Human())

	if len(meals) == 0 {
		b.WriteString("No meals logged for this day.\n")
		return b.String()
	}

	for _, meal := range meals {
		fmt.Fprintf(&b, "## %s\n", meal.Name)
		fmt.Fprintf(&b, "**Total**: %.0f kcal (%.0fC / %.0fF / %.0fP)\n\n",
			meal.Totals.Get(nutrition.NutrientCalories),
			meal.Totals.Get(nutrition.NutrientCarbohydrates),
			meal.Totals.Get(nutrition.NutrientFat),
			meal.Totals.Get(nutrition.NutrientProtein))

		if len(meal.Entries) == 0 {
			b.WriteString("No foods logged in this meal.\n\n")
			continue
		}
		for _, entry := range meal.Entries {
			fmt.Fprintf(&b, "- **%s**\n", entry.Name)
			fmt.Fprintf(&b, "  - Serving: %g %s\n", entry.Quantity, entry.Unit)
			fmt.Fprintf(&b, "  - Calories: %.0f kcal\n", entry.Nutrition.Get(nutrition.NutrientCalories))
			fmt.Fprintf(&b, "  - Macros: %.0fC / %.0fF / %.0fP\n",
				entry.Nutrition.Get(nutrition.NutrientCarbohydrates),
				entry.Nutrition.Get(nutrition.NutrientFat),
				entry.Nutrition.Get(nutrition.NutrientProtein))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatExercises(date nutrition.Date, groups []nutrition.ExerciseGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Exercise for %s\n\n", date.Human())

	var entries []nutrition.ExerciseEntry
	for _, group := range groups {
		entries = append(entries, group.Entries...)
	}
	if len(entries) == 0 {
		b.WriteString("No exercise logged for this day.\n")
		return b.String()
	}

	var totalMinutes, totalCalories float64
	for _, entry := range entries {
		fmt.Fprintf(&b, "- **%s**\n", entry.Name)
		if minutes := entry.Nutrition.Get(nutrition.NutrientMinutes); minutes > 0 {
			fmt.Fprintf(&b, "  - Duration: %.0f minutes\n", minutes)
			totalMinutes += minutes
		}
		if calories := entry.Nutrition.Get(nutrition.NutrientCaloriesBurned); calories > 0 {
			fmt.Fprintf(&b, "  - Calories Burned: %.0f kcal\n", calories)
			totalCalories += calories
		}
		if sets := entry.Nutrition.Get("sets"); sets > 0 {
			fmt.Fprintf(&b, "  - Sets: %.0f x %.0f reps @ %.0f\n",
				sets, entry.Nutrition.Get("reps/set"), entry.Nutrition.Get("weight/set"))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Summary\n")
	if totalMinutes > 0 {
		fmt.Fprintf(&b, "- **Total Duration**: %.0f minutes\n", totalMinutes)
	}
	if totalCalories > 0 {
		fmt.Fprintf(&b, "- **Total Calories Burned**: %.0f kcal\n", totalCalories)
	}
	return b.String()
}

// nutrientLine renders "value / goal (pct)" when a goal exists, bare value
// otherwise.
func nutrientLine(b *strings.Builder, totals, goals nutrition.Nutrients, name, display, unit string) {
	value := totals.Get(name)
	if goal := goals.Get(name); goal > 0 {
		fmt.Fprintf(b, "- **%s**: %.0f%s / %.0f%s (%.0f%%)\n", display, value, unit, goal, unit, value/goal*100)
		return
	}
	fmt.Fprintf(b, "- **%s**: %.0f%s\n", display, value, unit)
}

func formatMacros(report nutrition.MacroReport) string {
	totals, goals := report.Totals, report.Goals

	var b strings.Builder
	fmt.Fprintf(&b, "# Macros & Nutrients for %s\n\n", report.Date.Human())

	b.WriteString("## Macronutrients\n")
	nutrientLine(&b, totals, goals, nutrition.NutrientCalories, "Calories", "kcal")
	nutrientLine(&b, totals, goals, nutrition.NutrientCarbohydrates, "Carbohydrates", "g")
	nutrientLine(&b, totals, goals, nutrition.NutrientProtein, "Protein", "g")
	nutrientLine(&b, totals, goals, nutrition.NutrientFat, "Fat", "g")

	for _, fat := range []struct{ key, display string }{
		{"saturated fat", "Saturated"},
		{"polyunsaturated fat", "Polyunsaturated"},
		{"monounsaturated fat", "Monounsaturated"},
		{"trans fat", "Trans"},
	} {
		if v, ok := totals[fat.key]; ok {
			fmt.Fprintf(&b, "  - %s: %.1fg\n", fat.display, v)
		}
	}

	nutrientLine(&b, totals, goals, nutrition.NutrientFiber, "Fiber", "g")
	nutrientLine(&b, totals, goals, nutrition.NutrientSugar, "Sugar", "g")
	b.WriteString("\n## Micronutrients\n")

	for _, micro := range []struct{ key, display, unit string }{
		{nutrition.NutrientSodium, "Sodium", "mg"},
		{"potassium", "Potassium", "mg"},
		{"cholesterol", "Cholesterol", "mg"},
		{"vitamin a", "Vitamin A", "%"},
		{"vitamin c", "Vitamin C", "%"},
		{"calcium", "Calcium", "%"},
		{"iron", "Iron", "%"},
	} {
		if _, ok := totals[micro.key]; ok {
			nutrientLine(&b, totals, goals, micro.key, micro.display, micro.unit)
		}
	}
	return b.String()
}

func formatWater(report nutrition.WaterReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Water Intake for %s\n\n", report.Date.Human())

	if report.ML > 0 {
		fmt.Fprintf(&b, "**Amount**: %.0f oz (%.1f cups / %.0f ml)\n", report.Ounces(), report.Cups(), report.ML)
	} else {
		b.WriteString("No water intake logged for this day.\n")
	}

	b.WriteString("\n*Recommended daily intake: 64 oz (8 cups / 2000 ml)*\n")
	if report.ML > 0 {
		fmt.Fprintf(&b, "*Progress: %.0f%% of recommended amount*\n", report.Ounces()/64*100)
	}
	return b.String()
}

func formatRange(entries []nutrition.RangeEntry) string {
	if len(entries) == 0 {
		return "No data available for the specified date range.\n"
	}

	numDays := float64(len(entries))
	var sumCalories, sumCarbs, sumFat, sumProtein, sumWaterML float64
	var completeDays, exerciseDays int
	for _, e := range entries {
		if e.Day == nil {
			continue
		}
		sumCalories += e.Day.Totals.Get(nutrition.NutrientCalories)
		sumCarbs += e.Day.Totals.Get(nutrition.NutrientCarbohydrates)
		sumFat += e.Day.Totals.Get(nutrition.NutrientFat)
		sumProtein += e.Day.Totals.Get(nutrition.NutrientProtein)
		sumWaterML += e.Day.WaterML
		if e.Day.Complete {
			completeDays++
		}
		if len(e.Day.Exercises) > 0 {
			exerciseDays++
		}
	}

	start, end := entries[0].Date, entries[len(entries)-1].Date

	var b strings.Builder
	b.WriteString("# Date Range Summary\n")
	fmt.Fprintf(&b, "**%s** to **%s**\n(%d days)\n\n", start.Human(), end.Human(), len(entries))

	b.WriteString("## Daily Averages\n")
	fmt.Fprintf(&b, "- **Calories**: %.0f kcal/day\n", sumCalories/numDays)
	fmt.Fprintf(&b, "- **Carbohydrates**: %.0fg/day\n", sumCarbs/numDays)
	fmt.Fprintf(&b, "- **Fat**: %.0fg/day\n", sumFat/numDays)
	fmt.Fprintf(&b, "- **Protein**: %.0fg/day\n", sumProtein/numDays)
	fmt.Fprintf(&b, "- **Water**: %.0f oz/day (%.0f ml/day)\n\n",
		sumWaterML/numDays/mlPerOunce, sumWaterML/numDays)

	b.WriteString("## Tracking Stats\n")
	fmt.Fprintf(&b, "- **Days Completed**: %d/%d (%.0f%%)\n",
		completeDays, len(entries), float64(completeDays)/numDays*100)
	fmt.Fprintf(&b, "- **Days with Exercise**: %d/%d (%.0f%%)\n\n",
		exerciseDays, len(entries), float64(exerciseDays)/numDays*100)

	b.WriteString("## Daily Breakdown\n")
	for _, e := range entries {
		if e.Day == nil {
			fmt.Fprintf(&b, "- **%s**: unavailable (%s)\n", e.Date, e.Err)
			continue
		}
		fmt.Fprintf(&b, "- **%s**: %.0f kcal, %.0fC/%.0fF/%.0fP, %.0f oz water",
			e.Date,
			e.Day.Totals.Get(nutrition.NutrientCalories),
			e.Day.Totals.Get(nutrition.NutrientCarbohydrates),
			e.Day.Totals.Get(nutrition.NutrientFat),
			e.Day.Totals.Get(nutrition.NutrientProtein),
			e.Day.WaterML/mlPerOunce)

		var status []string
		if e.Day.Complete {
			status = append(status, "✓")
		}
		if n := len(e.Day.Exercises); n > 0 {
			status = append(status, fmt.Sprintf("%d exercises", n))
		}
		if len(status) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(status, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}
