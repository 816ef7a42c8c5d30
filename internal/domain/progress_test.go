package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pettrack/internal/domain"
)

// TestGoalProgress covers the loss, gain and distance-based branches.
func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		target   float64
		starting float64
		goalType domain.GoalType
		expected float64
		delta    float64
	}{
		{
			name:     "loss halfway",
			current:  9, target: 8, starting: 10,
			goalType: domain.GoalWeightLoss,
			expected: 0.5, delta: 0.001,
		},
		{
			name:     "loss complete",
			current:  8, target: 8, starting: 10,
			goalType: domain.GoalWeightLoss,
			expected: 1.0, delta: 0.001,
		},
		{
			name:     "loss overshoot clamps",
			current:  7, target: 8, starting: 10,
			goalType: domain.GoalWeightLoss,
			expected: 1.0, delta: 0.001,
		},
		{
			name:     "loss weight went up",
			current:  11, target: 8, starting: 10,
			goalType: domain.GoalWeightLoss,
			expected: 0, delta: 0.001,
		},
		{
			name:     "loss misconfigured target above starting",
			current:  7, target: 10, starting: 8,
			goalType: domain.GoalWeightLoss,
			expected: 0, delta: 0.001,
		},
		{
			name:     "gain halfway",
			current:  11, target: 12, starting: 10,
			goalType: domain.GoalWeightGain,
			expected: 0.5, delta: 0.001,
		},
		{
			name:     "gain overshoot clamps",
			current:  14, target: 12, starting: 10,
			goalType: domain.GoalWeightGain,
			expected: 1.0, delta: 0.001,
		},
		{
			name:     "gain weight went down",
			current:  9, target: 12, starting: 10,
			goalType: domain.GoalWeightGain,
			expected: 0, delta: 0.001,
		},
		{
			name:     "gain misconfigured target below starting",
			current:  11, target: 10, starting: 12,
			goalType: domain.GoalWeightGain,
			expected: 0, delta: 0.001,
		},
		{
			name:     "maintenance at target",
			current:  10, target: 10, starting: 12,
			goalType: domain.GoalMaintenance,
			expected: 1.0, delta: 0.001,
		},
		{
			name:     "maintenance halfway back",
			current:  11, target: 10, starting: 12,
			goalType: domain.GoalMaintenance,
			expected: 0.5, delta: 0.001,
		},
		{
			name:     "maintenance started at target uses 1kg floor",
			current:  10.5, target: 10, starting: 10,
			goalType: domain.GoalMaintenance,
			expected: 0.5, delta: 0.001,
		},
		{
			name:     "maintenance drifted past reference distance",
			current:  15, target: 10, starting: 12,
			goalType: domain.GoalMaintenance,
			expected: 0, delta: 0.001,
		},
		{
			name:     "health improvement at target",
			current:  20, target: 20, starting: 24,
			goalType: domain.GoalHealthImprovement,
			expected: 1.0, delta: 0.001,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.GoalProgress(tc.current, tc.target, tc.starting, tc.goalType)
			assert.InDelta(t, tc.expected, got, tc.delta)
		})
	}
}

// TestGoalProgressMaintenanceAtTarget checks that reaching the target
// always reads as full progress for distance-based goals, whatever the
// starting point.
func TestGoalProgressMaintenanceAtTarget(t *testing.T) {
	for _, starting := range []float64{4, 10, 10.5, 30} {
		got := domain.GoalProgress(10, 10, starting, domain.GoalMaintenance)
		assert.InDelta(t, 1.0, got, 0.001, "starting=%v", starting)
	}
}

func TestGoalProgressIdempotent(t *testing.T) {
	a := domain.GoalProgress(9.3, 8, 10.2, domain.GoalWeightLoss)
	b := domain.GoalProgress(9.3, 8, 10.2, domain.GoalWeightLoss)
	assert.Equal(t, a, b)
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		fraction float64
		expected domain.ProgressTier
	}{
		{0.8, domain.TierHigh},
		{1.0, domain.TierHigh},
		{0.79999, domain.TierModerate},
		{0.5, domain.TierModerate},
		{0.49999, domain.TierLow},
		{0, domain.TierLow},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, domain.TierFor(tc.fraction), "fraction=%v", tc.fraction)
	}
}

func TestProgressFor(t *testing.T) {
	starting := 10.0
	goal := domain.WeightGoal{
		GoalType:         domain.GoalWeightLoss,
		StartingWeightKg: &starting,
		TargetWeightKg:   8,
	}

	res := domain.ProgressFor(goal, 8.2)
	assert.InDelta(t, 0.9, res.Fraction, 0.001)
	assert.Equal(t, domain.TierHigh, res.Tier)
}

// A goal stored without a starting weight is measured from the current
// weight, so it reports no progress until the weight moves.
func TestProgressForNoStartingWeight(t *testing.T) {
	goal := domain.WeightGoal{
		GoalType:       domain.GoalWeightLoss,
		TargetWeightKg: 8,
	}

	res := domain.ProgressFor(goal, 10)
	assert.Zero(t, res.Fraction)
	assert.Equal(t, domain.TierLow, res.Tier)
}

func TestGoalTypeValid(t *testing.T) {
	for _, gt := range []domain.GoalType{
		domain.GoalWeightLoss, domain.GoalWeightGain,
		domain.GoalMaintenance, domain.GoalHealthImprovement,
	} {
		assert.True(t, gt.Valid(), "%s", gt)
	}
	assert.False(t, domain.GoalType("crash_diet").Valid())
}
