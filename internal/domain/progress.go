package domain

import "math"

// ProgressTier buckets a progress fraction for display purposes.
type ProgressTier string

// Progress tiers, selected by fraction thresholds.
const (
	TierLow      ProgressTier = "low"
	TierModerate ProgressTier = "moderate"
	TierHigh     ProgressTier = "high"
)

// ProgressResult is the computed advancement toward a weight goal.
type ProgressResult struct {
	Fraction float64      `json:"fraction"`
	Tier     ProgressTier `json:"tier"`
}

// GoalProgress maps a pet's current, target and starting weights (all in
// kg) to a progress fraction in [0, 1] for the given goal type.
//
// Loss and gain goals measure the delta achieved against the total delta
// required; a goal whose target sits on the wrong side of the starting
// weight, or a pet that has moved the wrong way, reports 0 rather than
// an error. Maintenance and health-improvement goals measure closeness
// to the target, with the reference distance floored at 1 kg so a goal
// created at the target weight does not divide by zero. Overshoot in any
// direction clamps to 1.
func GoalProgress(current, target, starting float64, goalType GoalType) float64 {
	switch goalType {
	case GoalWeightLoss:
		totalToLose := starting - target
		if totalToLose <= 0 {
			return 0
		}
		lost := starting - current
		if lost <= 0 {
			return 0
		}
		return clamp01(lost / totalToLose)

	case GoalWeightGain:
		totalToGain := target - starting
		if totalToGain <= 0 {
			return 0
		}
		gained := current - starting
		if gained <= 0 {
			return 0
		}
		return clamp01(gained / totalToGain)

	default:
		distance := math.Abs(current - target)
		maxDistance := math.Max(math.Abs(starting-target), 1.0)
		return clamp01(1 - distance/maxDistance)
	}
}

// ProgressFor computes the progress result for a goal given the pet's
// current weight in kg. A goal recorded without a starting weight is
// measured from the current weight, which reads as 0% until the pet's
// weight diverges.
func ProgressFor(goal WeightGoal, currentKg float64) ProgressResult {
	starting := currentKg
	if goal.StartingWeightKg != nil {
		starting = *goal.StartingWeightKg
	}
	f := GoalProgress(currentKg, goal.TargetWeightKg, starting, goal.GoalType)
	return ProgressResult{Fraction: f, Tier: TierFor(f)}
}

// TierFor buckets a fraction: high at 0.8 and above, moderate at 0.5 and
// above, low below that.
func TierFor(fraction float64) ProgressTier {
	switch {
	case fraction >= 0.8:
		return TierHigh
	case fraction >= 0.5:
		return TierModerate
	default:
		return TierLow
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
