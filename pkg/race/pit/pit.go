// Package pit holds the pit-stop state machine: triggering a stop on a pit
// box, serving the stop (refuel, tires, optional setup change), counting
// down the penalty turn and granting the exit boost.
package pit

import (
	"github.com/pitlane-dev/gridrace/pkg/model"
	"github.com/pitlane-dev/gridrace/pkg/track"
)

// turns a serviced car waits in its box before moving again
const PenaltyTurns = 1

// Triggers reports whether landing on cell starts a pit stop for car. Only
// an unserviced car is pulled in; a serviced car may roll over boxes freely.
func Triggers(ix *track.Index, car *model.Car, cell int) bool {
	return !car.PitServiced && ix.HasTag(cell, model.TagPitBox)
}

// ApplyStop services the car on its pit box: moves it onto the cell, fills
// tires and fuel, applies the new setup if one was submitted with the move,
// and starts the waiting penalty.
func ApplyStop(car *model.Car, cell int, setup *model.Setup) {
	car.Cell = cell
	car.Tire = model.ResourceMax
	car.Fuel = model.ResourceMax
	if setup != nil {
		car.Setup = *setup
	}
	car.State = model.CarPitting
	car.PitServiced = true
	car.PitTurnsRemaining = PenaltyTurns
	car.PitExitBoost = false
}

// AdvancePenalty consumes one waiting turn. It reports true if the car was
// pitting, i.e. the turn was swallowed by the penalty. When the last penalty
// turn elapses the car reactivates with the exit boost raised.
func AdvancePenalty(car *model.Car) bool {
	if car.State != model.CarPitting {
		return false
	}
	car.PitTurnsRemaining--
	if car.PitTurnsRemaining <= 0 {
		car.PitTurnsRemaining = 0
		car.State = model.CarActive
		car.PitExitBoost = true
	}
	return true
}

// NoteArrival clears the serviced flag once the car occupies a main-lane
// cell again, re-arming the state machine for a future stop.
func NoteArrival(ix *track.Index, car *model.Car) {
	if ix.Lane(car.Cell) != model.PitLane {
		car.PitServiced = false
	}
}
