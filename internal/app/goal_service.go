package app

import (
	"context"
	"errors"
	"time"

	"pettrack/internal/domain"
)

var (
	// ErrNoActiveGoal indicates that the pet has no active weight goal.
	ErrNoActiveGoal = errors.New("no active goal")
	// ErrNoWeightHistory indicates that progress cannot be computed
	// because the pet has no recorded weight.
	ErrNoWeightHistory = errors.New("no weight recorded")
)

// GoalService encapsulates weight-goal use cases.
type GoalService struct {
	goals  domain.GoalRepository
	weight *WeightService
}

// NewGoalService creates a GoalService backed by the given repository
// and weight service.
func NewGoalService(goals domain.GoalRepository, weight *WeightService) *GoalService {
	return &GoalService{goals: goals, weight: weight}
}

// GoalStatus is the active goal together with its computed progress.
type GoalStatus struct {
	Goal            domain.WeightGoal     `json:"goal"`
	CurrentWeightKg float64               `json:"currentWeightKg"`
	Progress        domain.ProgressResult `json:"progress"`
}

// SetGoal validates and stores a new active goal for the pet, retiring
// any previous one. The pet's current weight is captured as the goal's
// starting weight; directional goals are validated against it so a loss
// goal cannot be created with a target at or above the current weight.
func (s *GoalService) SetGoal(ctx context.Context, petID int64, goalType domain.GoalType, targetKg float64) (*domain.WeightGoal, error) {
	if !goalType.Valid() {
		return nil, errors.New("unknown goal type")
	}
	if targetKg <= 0 {
		return nil, errors.New("targetKg must be > 0")
	}

	currentKg, ok, err := s.weight.CurrentWeightKg(ctx, petID)
	if err != nil {
		return nil, err
	}

	goal := domain.WeightGoal{
		PetID:          petID,
		GoalType:       goalType,
		TargetWeightKg: targetKg,
		Active:         true,
		CreatedAt:      time.Now(),
	}
	if ok {
		switch goalType {
		case domain.GoalWeightLoss:
			if targetKg >= currentKg {
				return nil, errors.New("loss goal target must be below current weight")
			}
		case domain.GoalWeightGain:
			if targetKg <= currentKg {
				return nil, errors.New("gain goal target must be above current weight")
			}
		}
		starting := currentKg
		goal.StartingWeightKg = &starting
	}

	id, err := s.goals.SetActiveGoal(ctx, goal)
	if err != nil {
		return nil, err
	}
	goal.ID = id
	return &goal, nil
}

// ActiveGoal returns the pet's active goal, or ErrNoActiveGoal.
func (s *GoalService) ActiveGoal(ctx context.Context, petID int64) (*domain.WeightGoal, error) {
	goal, err := s.goals.ActiveGoal(ctx, petID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, ErrNoActiveGoal
	}
	return goal, nil
}

// ClearGoal retires the pet's active goal.
func (s *GoalService) ClearGoal(ctx context.Context, petID int64) error {
	return s.goals.ClearActiveGoal(ctx, petID)
}

// Progress computes the pet's advancement toward its active goal from
// its latest recorded weight.
func (s *GoalService) Progress(ctx context.Context, petID int64) (*GoalStatus, error) {
	goal, err := s.ActiveGoal(ctx, petID)
	if err != nil {
		return nil, err
	}

	currentKg, ok, err := s.weight.CurrentWeightKg(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoWeightHistory
	}

	return &GoalStatus{
		Goal:            *goal,
		CurrentWeightKg: currentKg,
		Progress:        domain.ProgressFor(*goal, currentKg),
	}, nil
}
