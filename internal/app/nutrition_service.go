package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"pettrack/internal/domain"
)

// ErrFoodNotFound indicates that the referenced food item does not exist.
var ErrFoodNotFound = errors.New("food item not found")

const maxSearchResults = 25

// NutritionService encapsulates food-catalog, meal-logging and
// calorie-goal use cases.
type NutritionService struct {
	repo domain.NutritionRepository
}

// NewNutritionService creates a NutritionService backed by the given
// repository.
func NewNutritionService(repo domain.NutritionRepository) *NutritionService {
	return &NutritionService{repo: repo}
}

// SearchFood returns food items whose name or brand matches the query,
// capped at maxSearchResults.
func (s *NutritionService) SearchFood(ctx context.Context, query string) ([]domain.FoodItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query is required")
	}
	return s.repo.SearchFoodItems(ctx, query, maxSearchResults)
}

// AddFood validates and stores a new food item in the catalog.
func (s *NutritionService) AddFood(ctx context.Context, name, brand string, kcalPerServing, servingGrams float64) (*domain.FoodItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if kcalPerServing <= 0 {
		return nil, errors.New("kcalPerServing must be > 0")
	}
	if servingGrams <= 0 {
		return nil, errors.New("servingGrams must be > 0")
	}
	id, err := s.repo.AddFoodItem(ctx, name, strings.TrimSpace(brand), kcalPerServing, servingGrams)
	if err != nil {
		return nil, err
	}
	return s.repo.GetFoodItem(ctx, id)
}

// LogMeal records a feeding from a catalog item and a serving count.
func (s *NutritionService) LogMeal(ctx context.Context, petID, foodID int64, servings float64) (*domain.MealEvent, error) {
	if servings <= 0 || servings > 50 {
		return nil, errors.New("servings must be within (0, 50]")
	}
	food, err := s.repo.GetFoodItem(ctx, foodID)
	if err != nil {
		return nil, err
	}
	if food == nil {
		return nil, ErrFoodNotFound
	}

	now := time.Now()
	kcal := food.KcalPerServing * servings
	id, err := s.repo.AddMealEvent(ctx, petID, &foodID, food.Name, kcal, now)
	if err != nil {
		return nil, err
	}
	return &domain.MealEvent{
		ID: id, PetID: petID, FoodID: &foodID,
		Description: food.Name, Kcal: kcal, CreatedAt: now,
	}, nil
}

// LogFreeMeal records a feeding by calories alone, for food not in the
// catalog.
func (s *NutritionService) LogFreeMeal(ctx context.Context, petID int64, description string, kcal float64) (*domain.MealEvent, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errors.New("description is required")
	}
	if kcal <= 0 || kcal > 10000 {
		return nil, errors.New("kcal must be within (0, 10000]")
	}
	now := time.Now()
	id, err := s.repo.AddMealEvent(ctx, petID, nil, description, kcal, now)
	if err != nil {
		return nil, err
	}
	return &domain.MealEvent{
		ID: id, PetID: petID, Description: description, Kcal: kcal, CreatedAt: now,
	}, nil
}

// ListRecentMeals returns the most recent meal events up to limit.
func (s *NutritionService) ListRecentMeals(ctx context.Context, petID int64, limit int) ([]domain.MealEvent, error) {
	return s.repo.ListRecentMealEvents(ctx, petID, limit)
}

// UndoLastMeal deletes the most recent meal event.
func (s *NutritionService) UndoLastMeal(ctx context.Context, petID int64) (bool, int64, error) {
	items, err := s.repo.ListRecentMealEvents(ctx, petID, 1)
	if err != nil {
		return false, 0, err
	}
	if len(items) == 0 {
		return false, 0, nil
	}
	if err := s.repo.DeleteMealEvent(ctx, petID, items[0].ID); err != nil {
		return false, 0, err
	}
	return true, items[0].ID, nil
}

// SetCalorieGoal validates and stores the pet's daily calorie budget.
func (s *NutritionService) SetCalorieGoal(ctx context.Context, petID int64, dailyKcal float64) error {
	if dailyKcal < 10 || dailyKcal > 20000 {
		return errors.New("dailyKcal must be within [10, 20000]")
	}
	return s.repo.SetCalorieGoal(ctx, petID, dailyKcal, time.Now())
}

// CalorieStatus is today's intake measured against the pet's daily
// budget. Goal is nil when no budget is configured.
type CalorieStatus struct {
	Today         string              `json:"today"`
	ConsumedKcal  float64             `json:"consumedKcal"`
	Goal          *domain.CalorieGoal `json:"goal"`
	RemainingKcal float64             `json:"remainingKcal"`
}

// TodayCalorieStatus returns the intake for the given local day against
// the configured budget. Remaining never goes below zero.
func (s *NutritionService) TodayCalorieStatus(ctx context.Context, petID int64, today string) (*CalorieStatus, error) {
	consumed, err := s.repo.CaloriesForLocalDay(ctx, petID, today)
	if err != nil {
		return nil, err
	}
	goal, err := s.repo.GetCalorieGoal(ctx, petID)
	if err != nil {
		return nil, err
	}

	status := &CalorieStatus{Today: today, ConsumedKcal: consumed, Goal: goal}
	if goal != nil {
		if remaining := goal.DailyKcal - consumed; remaining > 0 {
			status.RemainingKcal = remaining
		}
	}
	return status, nil
}
