package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pettrack/internal/domain"
)

// AddFoodItem inserts a new food catalog entry.
func (d *DB) AddFoodItem(ctx context.Context, name, brand string, kcalPerServing, servingGrams float64) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO food_items(name, brand, kcal_per_serving, serving_grams, created_at) VALUES($1, $2, $3, $4, $5) RETURNING id;",
		name, brand, kcalPerServing, servingGrams, time.Now().UTC(),
	).Scan(&id)
	return id, err
}

// GetFoodItem retrieves a food item by ID.
func (d *DB) GetFoodItem(ctx context.Context, id int64) (*domain.FoodItem, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, name, brand, kcal_per_serving, serving_grams, created_at FROM food_items WHERE id=$1;", id)

	var f domain.FoodItem
	if err := row.Scan(&f.ID, &f.Name, &f.Brand, &f.KcalPerServing, &f.ServingGrams, &f.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// SearchFoodItems returns food items whose name or brand contains the
// query, case-insensitively, up to limit.
func (d *DB) SearchFoodItems(ctx context.Context, query string, limit int) ([]domain.FoodItem, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, name, brand, kcal_per_serving, serving_grams, created_at FROM food_items WHERE name ILIKE '%' || $1 || '%' OR brand ILIKE '%' || $1 || '%' ORDER BY name LIMIT $2;",
		query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.FoodItem, 0, limit)
	for rows.Next() {
		var f domain.FoodItem
		if err := rows.Scan(&f.ID, &f.Name, &f.Brand, &f.KcalPerServing, &f.ServingGrams, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// AddMealEvent inserts a new meal event for a pet.
func (d *DB) AddMealEvent(ctx context.Context, petID int64, foodID *int64, description string, kcal float64, createdAt time.Time) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO meal_events(pet_id, food_id, description, kcal, created_at) VALUES($1, $2, $3, $4, $5) RETURNING id;",
		petID, foodID, description, kcal, createdAt.UTC(),
	).Scan(&id)
	return id, err
}

// DeleteMealEvent removes a meal event by ID, scoped to a pet.
func (d *DB) DeleteMealEvent(ctx context.Context, petID int64, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM meal_events WHERE id=$1 AND pet_id=$2;", id, petID)
	return err
}

// ListRecentMealEvents returns the most recent meal events up to limit for a pet.
func (d *DB) ListRecentMealEvents(ctx context.Context, petID int64, limit int) ([]domain.MealEvent, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, food_id, description, kcal, created_at FROM meal_events WHERE pet_id=$1 ORDER BY created_at DESC LIMIT $2;", petID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.MealEvent, 0, limit)
	for rows.Next() {
		var e domain.MealEvent
		var foodID sql.NullInt64
		if err := rows.Scan(&e.ID, &foodID, &e.Description, &e.Kcal, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.PetID = petID
		if foodID.Valid {
			e.FoodID = &foodID.Int64
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CaloriesForLocalDay returns the total calories logged for a local calendar day for a pet.
func (d *DB) CaloriesForLocalDay(ctx context.Context, petID int64, localDay string) (float64, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", localDay, time.Local)
	if err != nil {
		return 0, err
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	var total float64
	err = d.sql.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(kcal), 0) FROM meal_events WHERE pet_id=$1 AND created_at >= $2 AND created_at < $3;",
		petID, dayStart.UTC(), dayEnd.UTC(),
	).Scan(&total)
	return total, err
}

// SetCalorieGoal upserts the pet's daily calorie budget.
func (d *DB) SetCalorieGoal(ctx context.Context, petID int64, dailyKcal float64, updatedAt time.Time) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO calorie_goals(pet_id, daily_kcal, updated_at) VALUES($1, $2, $3) ON CONFLICT (pet_id) DO UPDATE SET daily_kcal=EXCLUDED.daily_kcal, updated_at=EXCLUDED.updated_at;",
		petID, dailyKcal, updatedAt.UTC())
	return err
}

// GetCalorieGoal returns the pet's daily calorie budget, or nil if unset.
func (d *DB) GetCalorieGoal(ctx context.Context, petID int64) (*domain.CalorieGoal, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT pet_id, daily_kcal, updated_at FROM calorie_goals WHERE pet_id=$1;", petID)

	var g domain.CalorieGoal
	if err := row.Scan(&g.PetID, &g.DailyKcal, &g.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}
