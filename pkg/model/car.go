package model

type CarState string

const (
	CarActive  CarState = "ACTIVE"
	CarPitting CarState = "PITTING"
	CarWaiting CarState = "WAITING"
	CarDNF     CarState = "DNF"
)

type TireCompound string

const (
	CompoundSoft TireCompound = "soft"
	CompoundHard TireCompound = "hard"
)

// resource levels are clamped to this range
const (
	ResourceMin = 0
	ResourceMax = 100
)

// Setup holds the adjustable car parameters. Changed only at race start and
// during a pit stop.
//
//nolint:tagliatelle // wire format uses camelCase keys
type Setup struct {
	Compound     TireCompound `json:"compound"`
	PSI          [4]float64   `json:"psi"` // per corner, nominal 32
	WingFrontDeg float64      `json:"wingFrontDeg"`
	WingRearDeg  float64      `json:"wingRearDeg"`
}

// DefaultSetup is the neutral baseline: soft compound, 32 psi all around,
// flat wings.
func DefaultSetup() Setup {
	return Setup{
		Compound: CompoundSoft,
		PSI:      [4]float64{32, 32, 32, 32},
	}
}

// MoveCycle is the rolling 5-turn recording window for the move budget.
// Slots hold the distances spent in the last up-to-5 recorded moves.
//
//nolint:tagliatelle // wire format uses camelCase keys
type MoveCycle struct {
	Index int    `json:"index"` // 0-4, next slot to write
	Spent [5]int `json:"spent"`
}

// Car is the complete per-car race state. A Car is owned exclusively by one
// race session and mutated only through the session's commit operations.
//
//nolint:tagliatelle // wire format uses camelCase keys
type Car struct {
	CarID   string `json:"carId"`
	OwnerID string `json:"ownerId,omitempty"`
	IsBot   bool   `json:"isBot"`
	// Cell is the dense index of the occupied cell within the track index.
	Cell              int       `json:"cell"`
	LapCount          int       `json:"lapCount"`
	Tire              int       `json:"tire"`
	Fuel              int       `json:"fuel"`
	Setup             Setup     `json:"setup"`
	State             CarState  `json:"state"`
	PitTurnsRemaining int       `json:"pitTurnsRemaining"`
	PitExitBoost      bool      `json:"pitExitBoost"`
	PitServiced       bool      `json:"pitServiced"`
	MoveCycle         MoveCycle `json:"moveCycle"`
}

// NewCar creates an active car at the given cell with full resources and the
// default setup.
func NewCar(carID string, cell int) *Car {
	return &Car{
		CarID: carID,
		Cell:  cell,
		Tire:  ResourceMax,
		Fuel:  ResourceMax,
		Setup: DefaultSetup(),
		State: CarActive,
	}
}

// ClampResource keeps a tire/fuel value within [ResourceMin, ResourceMax].
func ClampResource(v int) int {
	if v < ResourceMin {
		return ResourceMin
	}
	if v > ResourceMax {
		return ResourceMax
	}
	return v
}
