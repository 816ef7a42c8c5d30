package memory

import (
	"context"
	"testing"
	"time"

	"pettrack/internal/domain"
)

func TestWeightRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	petID := int64(1)

	// Add event
	now := time.Now()
	id, err := db.AddWeightEvent(ctx, petID, 8.5, "kg", now)
	if err != nil {
		t.Fatalf("AddWeightEvent: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero ID")
	}

	// List events
	events, err := db.ListRecentWeightEvents(ctx, petID, 10)
	if err != nil {
		t.Fatalf("ListRecentWeightEvents: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}
	if events[0].Value != 8.5 {
		t.Errorf("expected 8.5, got %f", events[0].Value)
	}
	if events[0].Day == "" {
		t.Error("expected Day to be populated")
	}

	// Other pet sees nothing
	events2, _ := db.ListRecentWeightEvents(ctx, 999, 10)
	if len(events2) != 0 {
		t.Error("expected 0 events for other pet")
	}

	// Latest overall
	latest, err := db.LatestWeightEvent(ctx, petID)
	if err != nil {
		t.Fatalf("LatestWeightEvent: %v", err)
	}
	if latest == nil || latest.Value != 8.5 {
		t.Errorf("expected latest 8.5, got %+v", latest)
	}

	// Latest for day
	localDay := now.Format("2006-01-02")
	forDay, err := db.LatestWeightForLocalDay(ctx, petID, localDay)
	if err != nil {
		t.Fatalf("LatestWeightForLocalDay: %v", err)
	}
	if forDay == nil {
		t.Error("expected latest weight, got nil")
	} else if forDay.Value != 8.5 {
		t.Errorf("expected 8.5, got %f", forDay.Value)
	}

	// Delete latest
	ok, err := db.DeleteLatestWeightEvent(ctx, petID)
	if err != nil {
		t.Fatalf("DeleteLatestWeightEvent: %v", err)
	}
	if !ok {
		t.Error("expected true")
	}

	events, _ = db.ListRecentWeightEvents(ctx, petID, 10)
	if len(events) != 0 {
		t.Error("expected 0 events")
	}
}

func TestGoalRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	petID := int64(1)

	starting := 10.0
	id, err := db.SetActiveGoal(ctx, weightLossGoal(petID, starting, 8))
	if err != nil {
		t.Fatalf("SetActiveGoal: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero ID")
	}

	// Replacing retires the previous goal
	id2, err := db.SetActiveGoal(ctx, weightLossGoal(petID, starting, 7))
	if err != nil {
		t.Fatalf("SetActiveGoal: %v", err)
	}

	active, err := db.ActiveGoal(ctx, petID)
	if err != nil {
		t.Fatalf("ActiveGoal: %v", err)
	}
	if active == nil || active.ID != id2 {
		t.Fatalf("expected goal %d active, got %+v", id2, active)
	}
	if active.TargetWeightKg != 7 {
		t.Errorf("TargetWeightKg = %v; want 7", active.TargetWeightKg)
	}

	if err := db.ClearActiveGoal(ctx, petID); err != nil {
		t.Fatalf("ClearActiveGoal: %v", err)
	}
	active, _ = db.ActiveGoal(ctx, petID)
	if active != nil {
		t.Errorf("expected no active goal, got %+v", active)
	}
}

func TestNutritionRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	petID := int64(1)

	foodID, err := db.AddFoodItem(ctx, "Chicken Kibble", "Acme", 350, 100)
	if err != nil {
		t.Fatalf("AddFoodItem: %v", err)
	}
	_, _ = db.AddFoodItem(ctx, "Salmon Bites", "Acme", 120, 30)

	// Case-insensitive search on name and brand
	byName, _ := db.SearchFoodItems(ctx, "kibble", 10)
	if len(byName) != 1 {
		t.Errorf("search kibble: got %d items", len(byName))
	}
	byBrand, _ := db.SearchFoodItems(ctx, "ACME", 10)
	if len(byBrand) != 2 {
		t.Errorf("search ACME: got %d items", len(byBrand))
	}

	now := time.Now()
	if _, err := db.AddMealEvent(ctx, petID, &foodID, "Chicken Kibble", 350, now); err != nil {
		t.Fatalf("AddMealEvent: %v", err)
	}
	if _, err := db.AddMealEvent(ctx, petID, nil, "table scraps", 90, now); err != nil {
		t.Fatalf("AddMealEvent: %v", err)
	}

	localDay := now.Format("2006-01-02")
	total, err := db.CaloriesForLocalDay(ctx, petID, localDay)
	if err != nil {
		t.Fatalf("CaloriesForLocalDay: %v", err)
	}
	if total != 440 {
		t.Errorf("total = %v; want 440", total)
	}

	// Other pet's total is independent
	other, _ := db.CaloriesForLocalDay(ctx, 999, localDay)
	if other != 0 {
		t.Errorf("other pet total = %v; want 0", other)
	}

	meals, _ := db.ListRecentMealEvents(ctx, petID, 10)
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(meals))
	}
	if err := db.DeleteMealEvent(ctx, petID, meals[0].ID); err != nil {
		t.Fatalf("DeleteMealEvent: %v", err)
	}
	meals, _ = db.ListRecentMealEvents(ctx, petID, 10)
	if len(meals) != 1 {
		t.Errorf("expected 1 meal, got %d", len(meals))
	}

	// Calorie goal upsert
	if err := db.SetCalorieGoal(ctx, petID, 500, now); err != nil {
		t.Fatalf("SetCalorieGoal: %v", err)
	}
	if err := db.SetCalorieGoal(ctx, petID, 600, now); err != nil {
		t.Fatalf("SetCalorieGoal: %v", err)
	}
	goal, _ := db.GetCalorieGoal(ctx, petID)
	if goal == nil || goal.DailyKcal != 600 {
		t.Errorf("goal = %+v; want 600 kcal", goal)
	}
}

func TestPetRepositoryDeleteCascades(t *testing.T) {
	db := New()
	ctx := context.Background()

	petID, err := db.CreatePet(ctx, 1, "Rex", "dog", "beagle", nil)
	if err != nil {
		t.Fatalf("CreatePet: %v", err)
	}
	_, _ = db.AddWeightEvent(ctx, petID, 10, "kg", time.Now())
	_, _ = db.AddMealEvent(ctx, petID, nil, "kibble", 200, time.Now())
	_, _ = db.SetActiveGoal(ctx, weightLossGoal(petID, 10, 8))
	_ = db.SetCalorieGoal(ctx, petID, 500, time.Now())

	if err := db.DeletePet(ctx, petID); err != nil {
		t.Fatalf("DeletePet: %v", err)
	}

	pet, _ := db.GetPet(ctx, petID)
	if pet != nil {
		t.Error("expected pet to be gone")
	}
	weights, _ := db.ListRecentWeightEvents(ctx, petID, 10)
	if len(weights) != 0 {
		t.Error("expected weights to be gone")
	}
	meals, _ := db.ListRecentMealEvents(ctx, petID, 10)
	if len(meals) != 0 {
		t.Error("expected meals to be gone")
	}
	goal, _ := db.ActiveGoal(ctx, petID)
	if goal != nil {
		t.Error("expected goal to be gone")
	}
	calGoal, _ := db.GetCalorieGoal(ctx, petID)
	if calGoal != nil {
		t.Error("expected calorie goal to be gone")
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	repo := db.NewSessionRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, 1, "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	s, err := repo.GetByToken(ctx, "tok")
	if err != nil || s == nil {
		t.Fatalf("GetByToken: %v, %+v", err, s)
	}

	if err := repo.Create(ctx, 1, "old", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	old, _ := repo.GetByToken(ctx, "old")
	if old != nil {
		t.Error("expected expired session to be removed")
	}

	if err := repo.Delete(ctx, "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	s, _ = repo.GetByToken(ctx, "tok")
	if s != nil {
		t.Error("expected session to be removed")
	}
}

func weightLossGoal(petID int64, startingKg, targetKg float64) domain.WeightGoal {
	return domain.WeightGoal{
		PetID:            petID,
		GoalType:         domain.GoalWeightLoss,
		StartingWeightKg: &startingKg,
		TargetWeightKg:   targetKg,
		Active:           true,
		CreatedAt:        time.Now(),
	}
}
