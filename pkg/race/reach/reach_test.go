//nolint:funlen // scenario tests
package reach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitlane-dev/gridrace/pkg/model"
	"github.com/pitlane-dev/gridrace/pkg/track"
	"github.com/pitlane-dev/gridrace/testsupport/trackdata"
)

func ovalIndex(t *testing.T) *track.Index {
	t.Helper()
	return track.NewIndex(trackdata.Oval(trackdata.DefaultZones))
}

func cellAt(t *testing.T, ix *track.Index, lane, zone int) int {
	t.Helper()
	i := ix.CellIndex(trackdata.CellID(lane, zone))
	require.GreaterOrEqual(t, i, 0)
	return i
}

func noOccupancy(ix *track.Index) []bool {
	return make([]bool, ix.NumCells())
}

// open track from the inner-lane start/finish cell with a full budget: nine
// same-lane forward targets, lane-change targets one lane over, nothing in
// the pit lane or two lanes away.
func TestCompute_OpenTrackFromStartFinish(t *testing.T) {
	ix := ovalIndex(t)
	start := cellAt(t, ix, model.InnerLane, 0)

	res := Compute(ix, start, noOccupancy(ix), 9, model.DefaultSetup(), Options{})

	sameLane := 0
	for cell, info := range res {
		assert.NotEqual(t, start, cell, "start cell must never be a target")
		assert.LessOrEqual(t, info.Distance, 9)
		assert.GreaterOrEqual(t, info.Distance, 1)
		lane := ix.Lane(cell)
		assert.NotEqual(t, model.PitLane, lane)
		assert.LessOrEqual(t, lane-model.InnerLane, 1, "cell %s", ix.CellID(cell))
		if lane == model.InnerLane {
			sameLane++
		}
		assert.False(t, info.IsPitTrigger)
	}
	assert.Equal(t, 9, sameLane)

	// spot-check distances, spends and costs
	straight := res[cellAt(t, ix, model.InnerLane, 4)]
	assert.Equal(t, 4, straight.Distance)
	assert.Equal(t, 4, straight.MoveSpend)
	assert.Equal(t, 2, straight.TireCost)
	assert.Equal(t, 2, straight.FuelCost)

	change := res[cellAt(t, ix, model.MiddleLane, 4)]
	assert.Equal(t, 4, change.Distance)
	assert.Equal(t, 5, change.MoveSpend, "lane change costs one extra unit")
}

func TestCompute_BudgetRespected(t *testing.T) {
	ix := ovalIndex(t)
	start := cellAt(t, ix, model.MiddleLane, 5)
	for budget := 0; budget <= 9; budget++ {
		res := Compute(ix, start, noOccupancy(ix), budget, model.DefaultSetup(), Options{})
		for cell, info := range res {
			assert.LessOrEqual(t, info.Distance, budget, "cell %s", ix.CellID(cell))
		}
		if budget == 0 {
			assert.Empty(t, res)
		}
	}
}

// pit entry is only produced at distance exactly 1 from the inner-lane cell
// feeding PIT_ENTRY.
func TestCompute_PitEntryOnlyAtDistanceOne(t *testing.T) {
	ix := ovalIndex(t)
	entry := cellAt(t, ix, model.PitLane, trackdata.PitEntryZone)

	feeder := cellAt(t, ix, model.InnerLane, trackdata.PitEntryZone-1)
	res := Compute(ix, feeder, noOccupancy(ix), 9, model.DefaultSetup(), Options{})
	info, ok := res[entry]
	require.True(t, ok, "pit entry must be reachable from the feeder cell")
	assert.Equal(t, 1, info.Distance)
	assert.Equal(t, 1, info.MoveSpend)
	assert.False(t, info.IsPitTrigger, "the entry cell is not a pit box")

	// one cell further back the entry would be at distance 2: never produced
	behind := cellAt(t, ix, model.InnerLane, trackdata.PitEntryZone-2)
	res = Compute(ix, behind, noOccupancy(ix), 9, model.DefaultSetup(), Options{})
	for cell := range res {
		assert.NotEqual(t, model.PitLane, ix.Lane(cell))
	}

	// occupied entry is no target either
	occ := noOccupancy(ix)
	occ[entry] = true
	res = Compute(ix, feeder, occ, 9, model.DefaultSetup(), Options{})
	_, ok = res[entry]
	assert.False(t, ok)
}

// two cars one and two steps ahead in the own lane: no same-lane target
// survives, but merging into the adjacent lane stays legal.
func TestCompute_OwnLaneBlockedByNearestCar(t *testing.T) {
	ix := ovalIndex(t)
	start := cellAt(t, ix, model.InnerLane, 0)
	occ := noOccupancy(ix)
	occ[cellAt(t, ix, model.InnerLane, 1)] = true
	occ[cellAt(t, ix, model.InnerLane, 2)] = true

	res := Compute(ix, start, occ, 9, model.DefaultSetup(), Options{})
	assert.NotEmpty(t, res)
	for cell := range res {
		assert.NotEqual(t, model.InnerLane, ix.Lane(cell),
			"own lane is blocked, got %s", ix.CellID(cell))
	}
}

func TestCompute_OwnLanePartialBlock(t *testing.T) {
	ix := ovalIndex(t)
	start := cellAt(t, ix, model.OuterLane, 0)
	occ := noOccupancy(ix)
	occ[cellAt(t, ix, model.OuterLane, 3)] = true

	res := Compute(ix, start, occ, 9, model.DefaultSetup(), Options{})
	for zone := 1; zone <= 2; zone++ {
		_, ok := res[cellAt(t, ix, model.OuterLane, zone)]
		assert.True(t, ok, "zone %d before the blocker must be reachable", zone)
	}
	for zone := 3; zone <= 9; zone++ {
		_, ok := res[cellAt(t, ix, model.OuterLane, zone)]
		assert.False(t, ok, "zone %d at/past the blocker must be blocked", zone)
	}
}

// a single occupied cell in the destination lane may be merged past; the
// second one blocks everything beyond it.
func TestCompute_DestinationLaneSingleBlockerPass(t *testing.T) {
	ix := ovalIndex(t)
	start := cellAt(t, ix, model.InnerLane, 0)
	occ := noOccupancy(ix)
	occ[cellAt(t, ix, model.MiddleLane, 2)] = true
	occ[cellAt(t, ix, model.MiddleLane, 4)] = true

	res := Compute(ix, start, occ, 9, model.DefaultSetup(), Options{})

	_, ok := res[cellAt(t, ix, model.MiddleLane, 1)]
	assert.True(t, ok, "target before the first blocker")
	_, ok = res[cellAt(t, ix, model.MiddleLane, 3)]
	assert.True(t, ok, "merging past a single blocker is allowed")
	_, ok = res[cellAt(t, ix, model.MiddleLane, 2)]
	assert.False(t, ok, "occupied cell is never a target")
	for zone := 4; zone <= 9; zone++ {
		_, ok = res[cellAt(t, ix, model.MiddleLane, zone)]
		assert.False(t, ok, "zone %d beyond the second blocker", zone)
	}

	// own lane is unaffected by the destination-lane traffic
	for zone := 1; zone <= 9; zone++ {
		_, ok = res[cellAt(t, ix, model.InnerLane, zone)]
		assert.True(t, ok, "own lane zone %d", zone)
	}
}

// inside the pit lane the budget collapses to a single step
func TestCompute_PitLaneSingleStep(t *testing.T) {
	ix := ovalIndex(t)
	start := cellAt(t, ix, model.PitLane, trackdata.PitEntryZone)

	res := Compute(ix, start, noOccupancy(ix), 9, model.DefaultSetup(), Options{})
	require.Len(t, res, 1)
	info := res[cellAt(t, ix, model.PitLane, trackdata.PitEntryZone+1)]
	assert.Equal(t, 1, info.Distance)
	assert.Equal(t, 1, info.MoveSpend)
	assert.True(t, info.IsPitTrigger)
}

// from a pit box any forward box is reachable, stopping at occupied cells
func TestCompute_PitBoxForwardRoll(t *testing.T) {
	ix := ovalIndex(t)
	start := cellAt(t, ix, model.PitLane, trackdata.FirstBoxZone)

	res := Compute(ix, start, noOccupancy(ix), 9, model.DefaultSetup(), Options{})
	wantBoxes := []int{trackdata.FirstBoxZone + 1, trackdata.FirstBoxZone + 2}
	assert.Len(t, res, len(wantBoxes))
	for _, zone := range wantBoxes {
		info, ok := res[cellAt(t, ix, model.PitLane, zone)]
		require.True(t, ok, "box zone %d", zone)
		assert.Equal(t, zone-trackdata.FirstBoxZone, info.Distance)
		assert.Equal(t, 1, info.MoveSpend)
		assert.True(t, info.IsPitTrigger)
	}

	occ := noOccupancy(ix)
	occ[cellAt(t, ix, model.PitLane, trackdata.FirstBoxZone+1)] = true
	res = Compute(ix, start, occ, 9, model.DefaultSetup(), Options{})
	assert.Empty(t, res, "an occupied pit cell blocks the whole chain behind it")
}

// a serviced car on its box gets the synthetic skip-to-exit target
func TestCompute_PitExitSkip(t *testing.T) {
	ix := ovalIndex(t)
	start := cellAt(t, ix, model.PitLane, trackdata.FirstBoxZone)
	skip := ix.PitSkipCell()

	res := Compute(ix, start, noOccupancy(ix), 9, model.DefaultSetup(),
		Options{AllowPitExitSkip: true})
	info, ok := res[skip]
	require.True(t, ok, "skip target must be injected")
	assert.Equal(t, trackdata.LastBoxZone+1-trackdata.FirstBoxZone, info.Distance)
	assert.Equal(t, 1, info.MoveSpend)
	assert.Equal(t, 0, info.TireCost, "the skip is free")
	assert.Equal(t, 0, info.FuelCost)

	// without the boost the skip cell is out of reach
	res = Compute(ix, start, noOccupancy(ix), 9, model.DefaultSetup(), Options{})
	_, ok = res[skip]
	assert.False(t, ok)
}

// a serviced car back on a main lane must not see pit boxes anymore
func TestCompute_DisallowPitBoxTargets(t *testing.T) {
	ix := ovalIndex(t)
	feeder := cellAt(t, ix, model.InnerLane, trackdata.PitEntryZone-1)

	res := Compute(ix, feeder, noOccupancy(ix), 9, model.DefaultSetup(),
		Options{DisallowPitBoxTargets: true})
	for cell := range res {
		assert.False(t, ix.HasTag(cell, model.TagPitBox))
	}
	// the entry cell itself carries no box tag and stays legal
	_, ok := res[cellAt(t, ix, model.PitLane, trackdata.PitEntryZone)]
	assert.True(t, ok)
}
