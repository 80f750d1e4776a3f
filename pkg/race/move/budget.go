package move

import "github.com/pitlane-dev/gridrace/pkg/model"

const (
	// Allowance is the per-car distance budget for one 5-turn cycle.
	Allowance = 40
	// CycleSlots is the number of recorded moves per cycle.
	CycleSlots = 5
	// BaseMaxSteps caps a single move for a healthy car.
	BaseMaxSteps = 9
	// DepletedMaxSteps caps a single move once tire or fuel hits zero.
	DepletedMaxSteps = 4
)

// RecordMove writes the spend into the current slot and advances the cycle.
// When the index wraps past the last slot the whole window resets to zero:
// the budget is a hard periodic reset every 5 turns, not a sliding window.
func RecordMove(mc *model.MoveCycle, spend int) {
	mc.Spent[mc.Index] = spend
	mc.Index++
	if mc.Index >= CycleSlots {
		mc.Index = 0
		mc.Spent = [CycleSlots]int{}
	}
}

// RemainingBudget is the unspent allowance within the current cycle.
func RemainingBudget(mc *model.MoveCycle) int {
	sum := 0
	for _, s := range mc.Spent {
		sum += s
	}
	if sum >= Allowance {
		return 0
	}
	return Allowance - sum
}

// StepCap is the reachability step budget for the car's next move: the
// per-move cap (reduced when a resource is fully depleted) bounded by what
// is left of the cycle allowance.
func StepCap(car *model.Car) int {
	base := BaseMaxSteps
	if car.Tire == 0 || car.Fuel == 0 {
		base = DepletedMaxSteps
	}
	if remaining := RemainingBudget(&car.MoveCycle); remaining < base {
		return remaining
	}
	return base
}
