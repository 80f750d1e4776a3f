package pit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitlane-dev/gridrace/pkg/model"
	"github.com/pitlane-dev/gridrace/pkg/track"
	"github.com/pitlane-dev/gridrace/testsupport/trackdata"
)

func TestTriggers(t *testing.T) {
	ix := track.NewIndex(trackdata.Oval(trackdata.DefaultZones))
	box := ix.CellIndex(trackdata.CellID(model.PitLane, trackdata.FirstBoxZone))
	entry := ix.CellIndex(trackdata.CellID(model.PitLane, trackdata.PitEntryZone))
	require.GreaterOrEqual(t, box, 0)

	car := model.NewCar("car-1", 0)
	assert.True(t, Triggers(ix, car, box))
	assert.False(t, Triggers(ix, car, entry), "only boxes trigger a stop")

	car.PitServiced = true
	assert.False(t, Triggers(ix, car, box), "a serviced car rolls over boxes")
}

func TestApplyStopAndPenalty(t *testing.T) {
	car := model.NewCar("car-1", 3)
	car.Tire = 12
	car.Fuel = 30
	newSetup := model.DefaultSetup()
	newSetup.Compound = model.CompoundHard

	ApplyStop(car, 7, &newSetup)

	assert.Equal(t, 7, car.Cell)
	assert.Equal(t, model.ResourceMax, car.Tire)
	assert.Equal(t, model.ResourceMax, car.Fuel)
	assert.Equal(t, model.CompoundHard, car.Setup.Compound)
	assert.Equal(t, model.CarPitting, car.State)
	assert.Equal(t, PenaltyTurns, car.PitTurnsRemaining)
	assert.True(t, car.PitServiced)
	assert.False(t, car.PitExitBoost)

	// one penalty turn, then back to active with the exit boost raised
	assert.True(t, AdvancePenalty(car))
	assert.Equal(t, model.CarActive, car.State)
	assert.Equal(t, 0, car.PitTurnsRemaining)
	assert.True(t, car.PitExitBoost)

	assert.False(t, AdvancePenalty(car), "no-op once the car is active again")
}

func TestApplyStop_KeepsSetupWhenNoneSubmitted(t *testing.T) {
	car := model.NewCar("car-1", 0)
	before := car.Setup
	ApplyStop(car, 5, nil)
	assert.Equal(t, before, car.Setup)
}

func TestNoteArrival(t *testing.T) {
	ix := track.NewIndex(trackdata.Oval(trackdata.DefaultZones))
	mainCell := ix.CellIndex(trackdata.CellID(model.InnerLane, 9))
	pitCell := ix.CellIndex(trackdata.CellID(model.PitLane, trackdata.PitExitZone))

	car := model.NewCar("car-1", pitCell)
	car.PitServiced = true

	NoteArrival(ix, car)
	assert.True(t, car.PitServiced, "still inside the pit lane")

	car.Cell = mainCell
	NoteArrival(ix, car)
	assert.False(t, car.PitServiced, "cleared on the first main-lane cell")
}
