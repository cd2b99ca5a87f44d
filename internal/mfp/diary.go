package mfp

import (
	"encoding/json"
	"strings"

	"github.com/ai-mcp-garage/mcp-myfitnesspal/internal/nutrition"
)

// The v2 diary returns a single heterogeneous item list; the "type" field
// discriminates. Fields below are the union of the entry types we request.
type diaryResponse struct {
	Items []diaryItem `json:"items"`
}

type diaryItem struct {
	Type string `json:"type"`

	// food_entry
	MealName            string                     `json:"meal_name"`
	Servings            float64                    `json:"servings"`
	Food                *diaryFood                 `json:"food"`
	ServingSize         *servingSize               `json:"serving_size"`
	NutritionalContents map[string]json.RawMessage `json:"nutritional_contents"`

	// exercise_entry
	Exercise *diaryExercise `json:"exercise"`
	Duration float64        `json:"duration"`
	Energy   *unitValue     `json:"energy"`
	Sets     float64        `json:"sets"`
	Reps     float64        `json:"reps_per_set"`
	Weight   *unitValue     `json:"weight_per_set"`

	// water
	Milliliters float64 `json:"milliliters"`

	// diary_meta
	IsComplete bool `json:"is_complete"`
}

type diaryFood struct {
	Description string `json:"description"`
	BrandName   string `json:"brand_name"`
}

type diaryExercise struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

type unitValue struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

type servingSize struct {
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

type goalsResponse struct {
	Items []struct {
		DefaultGoal map[string]json.RawMessage `json:"default_goal"`
	} `json:"items"`
}

// assembleDay folds the flat diary item list into the domain model. Meals
// keep first-appearance order; totals are recomputed from the entries rather
// than trusted from the upstream.
func assembleDay(date nutrition.Date, diary diaryResponse, goals goalsResponse) *nutrition.Day {
	day := &nutrition.Day{
		Date:   date,
		Totals: nutrition.Nutrients{},
		Goals:  nutrition.Nutrients{},
	}

	mealIndex := map[string]int{}
	var cardio, strength []nutrition.ExerciseEntry

	for _, item := range diary.Items {
		switch item.Type {
		case "food_entry":
			entry := foodEntryFromItem(item)
			name := strings.ToLower(item.MealName)
			if name == "" {
				name = "uncategorized"
			}
			idx, ok := mealIndex[name]
			if !ok {
				idx = len(day.Meals)
				mealIndex[name] = idx
				day.Meals = append(day.Meals, nutrition.Meal{
					Name:   name,
					Totals: nutrition.Nutrients{},
				})
			}
			day.Meals[idx].Entries = append(day.Meals[idx].Entries, entry)
			addNutrients(day.Meals[idx].Totals, entry.Nutrition)
			addNutrients(day.Totals, entry.Nutrition)

		case "exercise_entry":
			entry, kind := exerciseEntryFromItem(item)
			if kind == "strength" {
				strength = append(strength, entry)
			} else {
				cardio = append(cardio, entry)
			}

		case "water":
			day.WaterML += item.Milliliters

		case "diary_meta":
			day.Complete = item.IsComplete
		}
	}

	if len(cardio) > 0 {
		day.Exercises = append(day.Exercises, nutrition.ExerciseGroup{
			Name:    "cardiovascular",
			Entries: cardio,
		})
	}
	if len(strength) > 0 {
		day.Exercises = append(day.Exercises, nutrition.ExerciseGroup{
			Name:    "strength training",
			Entries: strength,
		})
	}

	for _, g := range goals.Items {
		addNutrients(day.Goals, decodeNutrients(g.DefaultGoal))
		break // only the first item carries the active goal set
	}

	return day
}

func foodEntryFromItem(item diaryItem) nutrition.FoodEntry {
	entry := nutrition.FoodEntry{
		Quantity:  item.Servings,
		Unit:      "serving",
		Nutrition: decodeNutrients(item.NutritionalContents),
	}
	if item.Food != nil {
		entry.Name = item.Food.Description
		if item.Food.BrandName != "" {
			entry.Name = item.Food.BrandName + " " + entry.Name
		}
	}
	if item.ServingSize != nil && item.ServingSize.Unit != "" {
		entry.Unit = item.ServingSize.Unit
	}
	return entry
}

func exerciseEntryFromItem(item diaryItem) (nutrition.ExerciseEntry, string) {
	entry := nutrition.ExerciseEntry{Nutrition: nutrition.Nutrients{}}
	kind := "cardiovascular"
	if item.Exercise != nil {
		entry.Name = item.Exercise.Description
		kind = item.Exercise.Type
	}
	if kind == "strength" {
		entry.Nutrition["sets"] = item.Sets
		entry.Nutrition["reps/set"] = item.Reps
		if item.Weight != nil {
			entry.Nutrition["weight/set"] = item.Weight.Value
		}
	} else {
		entry.Nutrition[nutrition.NutrientMinutes] = item.Duration / 60
		if item.Energy != nil {
			entry.Nutrition[nutrition.NutrientCaloriesBurned] = item.Energy.Value
		}
	}
	return entry, kind
}

// decodeNutrients flattens an API nutrient object into the domain map. The
// "energy" field is an object, everything else a bare (possibly null)
// number; underscored keys become spaced ones.
func decodeNutrients(raw map[string]json.RawMessage) nutrition.Nutrients {
	out := nutrition.Nutrients{}
	for key, msg := range raw {
		if key == "energy" {
			var e unitValue
			if err := json.Unmarshal(msg, &e); err == nil {
				out[nutrition.NutrientCalories] = e.Value
			}
			continue
		}
		var v *float64
		if err := json.Unmarshal(msg, &v); err != nil || v == nil {
			continue
		}
		out[strings.ReplaceAll(key, "_", " ")] = *v
	}
	return out
}

func addNutrients(dst, src nutrition.Nutrients) {
	for k, v := range src {
		dst[k] += v
	}
}
