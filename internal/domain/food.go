package domain

import (
	"context"
	"time"
)

// FoodItem is a searchable food entry with per-serving calories.
type FoodItem struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Brand          string    `json:"brand,omitempty"`
	KcalPerServing float64   `json:"kcalPerServing"`
	ServingGrams   float64   `json:"servingGrams"`
	CreatedAt      time.Time `json:"createdAt"`
}

// MealEvent is a single feeding recorded for a pet. FoodID is nil for
// free-form entries logged by calories alone.
type MealEvent struct {
	ID          int64     `json:"id"`
	PetID       int64     `json:"petId"`
	FoodID      *int64    `json:"foodId,omitempty"`
	Description string    `json:"description"`
	Kcal        float64   `json:"kcal"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CalorieGoal is the daily calorie budget configured for a pet.
type CalorieGoal struct {
	PetID     int64     `json:"petId"`
	DailyKcal float64   `json:"dailyKcal"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NutritionRepository is the port for food, meal and calorie-goal
// persistence.
type NutritionRepository interface {
	AddFoodItem(ctx context.Context, name, brand string, kcalPerServing, servingGrams float64) (int64, error)
	GetFoodItem(ctx context.Context, id int64) (*FoodItem, error)
	SearchFoodItems(ctx context.Context, query string, limit int) ([]FoodItem, error)

	AddMealEvent(ctx context.Context, petID int64, foodID *int64, description string, kcal float64, createdAt time.Time) (int64, error)
	DeleteMealEvent(ctx context.Context, petID int64, id int64) error
	ListRecentMealEvents(ctx context.Context, petID int64, limit int) ([]MealEvent, error)
	CaloriesForLocalDay(ctx context.Context, petID int64, localDay string) (float64, error)

	SetCalorieGoal(ctx context.Context, petID int64, dailyKcal float64, updatedAt time.Time) error
	GetCalorieGoal(ctx context.Context, petID int64) (*CalorieGoal, error)
}
