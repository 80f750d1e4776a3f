// Package move models what a single move costs: the budget units it spends
// and the tire/fuel it burns. Resource costs are computed with fixed-point
// decimals so replays round identically on every platform.
package move

import (
	"github.com/shopspring/decimal"

	"github.com/pitlane-dev/gridrace/pkg/model"
)

var (
	tireRateSoft = decimal.NewFromFloat(0.5)
	tireRateHard = decimal.NewFromFloat(0.35)
	fuelRate     = decimal.NewFromFloat(0.45)

	aeroPerDeg = decimal.NewFromFloat(0.01)
	psiPerUnit = decimal.NewFromFloat(0.002)
	nominalPSI = decimal.NewFromInt(32)

	one = decimal.NewFromInt(1)

	// lane bias: the inner line wears tires faster but burns less fuel,
	// the outer line the other way around
	laneTireFactor = map[int]decimal.Decimal{
		model.PitLane:    one,
		model.InnerLane:  decimal.NewFromFloat(1.05),
		model.MiddleLane: one,
		model.OuterLane:  decimal.NewFromFloat(0.98),
	}
	laneFuelFactor = map[int]decimal.Decimal{
		model.PitLane:    one,
		model.InnerLane:  decimal.NewFromFloat(0.98),
		model.MiddleLane: one,
		model.OuterLane:  decimal.NewFromFloat(1.03),
	}
)

// Spend converts a move into budget units. Pit-lane moves always cost
// exactly one unit regardless of distance; a change between two main lanes
// costs one unit on top of the raw distance; a same-lane move costs the
// distance.
func Spend(distance, fromLane, toLane int) int {
	if fromLane == model.PitLane || toLane == model.PitLane {
		return 1
	}
	if fromLane != toLane {
		return distance + 1
	}
	return distance
}

// Costs returns the tire and fuel burned by a move of the given distance
// ending in toLane, for the given setup. Both values are rounded half up and
// are meant to be subtracted from clamped resource levels.
func Costs(distance int, setup model.Setup, toLane int) (tire, fuel int) {
	d := decimal.NewFromInt(int64(distance))
	aero := aeroFactor(setup)
	psi := psiFactor(setup)

	tireRate := tireRateSoft
	if setup.Compound == model.CompoundHard {
		tireRate = tireRateHard
	}
	t := d.Mul(tireRate).Mul(aero).Mul(psi).Mul(laneTireFactor[toLane])
	f := d.Mul(fuelRate).Mul(aero).Mul(psi).Mul(laneFuelFactor[toLane])
	return int(t.Round(0).IntPart()), int(f.Round(0).IntPart())
}

// aeroFactor = 1 + 0.01 * (front wing deg + rear wing deg)
func aeroFactor(setup model.Setup) decimal.Decimal {
	wings := decimal.NewFromFloat(setup.WingFrontDeg).
		Add(decimal.NewFromFloat(setup.WingRearDeg))
	return one.Add(aeroPerDeg.Mul(wings))
}

// psiFactor = 1 + 0.002 * sum(|corner psi - 32|)
func psiFactor(setup model.Setup) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range setup.PSI {
		sum = sum.Add(decimal.NewFromFloat(p).Sub(nominalPSI).Abs())
	}
	return one.Add(psiPerUnit.Mul(sum))
}
