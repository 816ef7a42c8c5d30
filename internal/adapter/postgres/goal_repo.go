package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pettrack/internal/domain"
)

// SetActiveGoal retires the pet's current goal and inserts the new one
// in a single transaction.
func (d *DB) SetActiveGoal(ctx context.Context, goal domain.WeightGoal) (int64, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"UPDATE weight_goals SET active=FALSE WHERE pet_id=$1 AND active;", goal.PetID); err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		"INSERT INTO weight_goals(pet_id, goal_type, starting_weight_kg, target_weight_kg, active, created_at) VALUES($1, $2, $3, $4, TRUE, $5) RETURNING id;",
		goal.PetID, string(goal.GoalType), goal.StartingWeightKg, goal.TargetWeightKg, goal.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, tx.Commit()
}

// ActiveGoal returns the pet's active goal, or nil if there is none.
func (d *DB) ActiveGoal(ctx context.Context, petID int64) (*domain.WeightGoal, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, goal_type, starting_weight_kg, target_weight_kg, created_at FROM weight_goals WHERE pet_id=$1 AND active;", petID)

	var g domain.WeightGoal
	var goalType string
	var starting sql.NullFloat64
	if err := row.Scan(&g.ID, &goalType, &starting, &g.TargetWeightKg, &g.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	g.PetID = petID
	g.GoalType = domain.GoalType(goalType)
	g.Active = true
	if starting.Valid {
		g.StartingWeightKg = &starting.Float64
	}
	return &g, nil
}

// ClearActiveGoal retires the pet's active goal if one exists.
func (d *DB) ClearActiveGoal(ctx context.Context, petID int64) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE weight_goals SET active=FALSE WHERE pet_id=$1 AND active;", petID)
	return err
}
