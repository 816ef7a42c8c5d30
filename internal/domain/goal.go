package domain

import (
	"context"
	"time"
)

// GoalType classifies a weight objective.
type GoalType string

// Supported goal types.
const (
	GoalWeightLoss        GoalType = "weight_loss"
	GoalWeightGain        GoalType = "weight_gain"
	GoalMaintenance       GoalType = "maintenance"
	GoalHealthImprovement GoalType = "health_improvement"
)

// Valid reports whether t is a known goal type.
func (t GoalType) Valid() bool {
	switch t {
	case GoalWeightLoss, GoalWeightGain, GoalMaintenance, GoalHealthImprovement:
		return true
	}
	return false
}

// WeightGoal is a weight objective for a pet. StartingWeightKg is the
// pet's weight captured when the goal was created; older goals may not
// carry one, in which case progress is measured from the current weight.
type WeightGoal struct {
	ID               int64     `json:"id"`
	PetID            int64     `json:"petId"`
	GoalType         GoalType  `json:"goalType"`
	StartingWeightKg *float64  `json:"startingWeightKg,omitempty"`
	TargetWeightKg   float64   `json:"targetWeightKg"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`
}

// GoalRepository is the port for weight-goal persistence. A pet has at
// most one active goal; SetActiveGoal retires any previous one.
type GoalRepository interface {
	SetActiveGoal(ctx context.Context, goal WeightGoal) (int64, error)
	ActiveGoal(ctx context.Context, petID int64) (*WeightGoal, error)
	ClearActiveGoal(ctx context.Context, petID int64) error
}
