// Package race owns the authoritative state of one running race: the
// immutable track index, the car arena, the turn rotation and the occupancy
// view. All mutation goes through the Session commit operations.
package race

import (
	"errors"

	"github.com/google/uuid"

	"github.com/pitlane-dev/gridrace/log"
	"github.com/pitlane-dev/gridrace/pkg/model"
	"github.com/pitlane-dev/gridrace/pkg/race/bot"
	"github.com/pitlane-dev/gridrace/pkg/race/move"
	"github.com/pitlane-dev/gridrace/pkg/race/pit"
	"github.com/pitlane-dev/gridrace/pkg/race/reach"
	"github.com/pitlane-dev/gridrace/pkg/track"
)

var (
	ErrNotYourTurn   = errors.New("not this car's turn")
	ErrUnknownCar    = errors.New("car id is not part of this race")
	ErrInactiveCar   = errors.New("car is not active")
	ErrNoCell        = errors.New("cell id does not resolve on this track")
	ErrInvalidTarget = errors.New("target is not a legal destination")
)

type ActionType string

const (
	ActionMove ActionType = "move"
	ActionPit  ActionType = "pit"
	ActionSkip ActionType = "skip"
)

// Action is one turn request from a player, bot or network layer.
type Action struct {
	Type         ActionType   `json:"type"`
	TargetCellID string       `json:"targetCellId,omitempty"` //nolint:tagliatelle // camelCase on the wire
	Setup        *model.Setup `json:"setup,omitempty"`
}

type (
	Session struct {
		id     uuid.UUID
		ix     *track.Index
		cars   []*model.Car
		carIdx map[string]int
		turn   *TurnState
		turnNo int
		// committed moves so far, drives the race-start grid ordering
		commits int
		traces  []bot.Decision
		l       *log.Logger
	}
	SessionOption func(s *Session)
)

func WithCars(cars []*model.Car) SessionOption {
	return func(s *Session) {
		s.cars = cars
		s.carIdx = make(map[string]int, len(cars))
		order := make([]string, 0, len(cars))
		for i, c := range cars {
			s.carIdx[c.CarID] = i
			order = append(order, c.CarID)
		}
		s.turn = NewTurnState(order)
	}
}

func WithID(id uuid.UUID) SessionOption {
	return func(s *Session) { s.id = id }
}

func WithLogger(l *log.Logger) SessionOption {
	return func(s *Session) { s.l = l }
}

func NewSession(ix *track.Index, opts ...SessionOption) *Session {
	ret := &Session{
		id:   uuid.New(),
		ix:   ix,
		turn: NewTurnState(nil),
		l:    log.Default().Named("race"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (s *Session) ID() uuid.UUID       { return s.id }
func (s *Session) Track() *track.Index { return s.ix }
func (s *Session) Turn() int           { return s.turnNo }
func (s *Session) CurrentCar() string  { return s.turn.Current() }

func (s *Session) Car(carID string) (*model.Car, bool) {
	i, ok := s.carIdx[carID]
	if !ok {
		return nil, false
	}
	return s.cars[i], true
}

// occupancy returns the cells blocked for the given mover: every other
// non-DNF car's cell. The mover's own cell never blocks its own move.
func (s *Session) occupancy(mover *model.Car) []bool {
	occ := make([]bool, s.ix.NumCells())
	for _, c := range s.cars {
		if c == mover || c.State == model.CarDNF {
			continue
		}
		occ[c.Cell] = true
	}
	return occ
}

// LegalTargets recomputes the reachable set for the car from current
// occupancy. Callers must not reuse it across commits.
func (s *Session) LegalTargets(carID string) (map[int]reach.TargetInfo, error) {
	car, ok := s.Car(carID)
	if !ok {
		return nil, ErrUnknownCar
	}
	inPit := s.ix.Lane(car.Cell) == model.PitLane
	opts := reach.Options{
		AllowPitExitSkip:      car.PitExitBoost && inPit,
		DisallowPitBoxTargets: car.PitServiced && !inPit,
	}
	return reach.Compute(s.ix, car.Cell, s.occupancy(car), move.StepCap(car), car.Setup, opts), nil
}

// SubmitAction validates and commits one turn action for the rotation's
// current car, then advances the rotation.
func (s *Session) SubmitAction(carID string, action Action) error {
	car, ok := s.Car(carID)
	if !ok {
		return ErrUnknownCar
	}
	if s.turn.Current() != carID {
		return ErrNotYourTurn
	}
	if car.State != model.CarActive {
		return ErrInactiveCar
	}

	if action.Type == ActionSkip {
		s.commitSkip(car)
		s.endTurn()
		return nil
	}

	target := s.ix.CellIndex(action.TargetCellID)
	if target < 0 {
		return ErrNoCell
	}
	targets, err := s.LegalTargets(carID)
	if err != nil {
		return err
	}
	info, ok := targets[target]
	if !ok {
		return ErrInvalidTarget
	}
	s.commitMove(car, info, action.Setup)
	s.endTurn()
	return nil
}

func (s *Session) commitSkip(car *model.Car) {
	move.RecordMove(&car.MoveCycle, 0)
	car.PitExitBoost = false
	s.commits++
	s.l.Debug("skip committed", log.String("car", car.CarID))
}

//nolint:funlen // one commit is one atomic sequence
func (s *Session) commitMove(car *model.Car, info reach.TargetInfo, setup *model.Setup) {
	from := car.Cell
	move.RecordMove(&car.MoveCycle, info.MoveSpend)
	car.Tire = model.ClampResource(car.Tire - info.TireCost)
	car.Fuel = model.ClampResource(car.Fuel - info.FuelCost)
	car.PitExitBoost = false

	crossedLine := s.ix.Lane(from) != model.PitLane &&
		s.ix.Lane(info.Cell) != model.PitLane &&
		s.ix.Fwd(from) > s.ix.Fwd(info.Cell)
	if crossedLine {
		car.LapCount++
	}

	if pit.Triggers(s.ix, car, info.Cell) {
		pit.ApplyStop(car, info.Cell, setup)
	} else {
		car.Cell = info.Cell
		pit.NoteArrival(s.ix, car)
	}
	s.commits++
	s.l.Debug("move committed",
		log.String("car", car.CarID),
		log.String("from", s.ix.CellID(from)),
		log.String("to", s.ix.CellID(car.Cell)),
		log.Int("spend", info.MoveSpend),
		log.Int("lap", car.LapCount),
		log.Bool("pitStop", car.State == model.CarPitting))
}

// endTurn advances the rotation, swallowing pit penalties and skipping DNF
// cars. Bounded by the rotation length so it terminates even when every car
// is pitting or retired.
func (s *Session) endTurn() {
	s.turnNo++
	for i := 0; i < len(s.turn.Order); i++ {
		cur, ok := s.Car(s.turn.Advance())
		if !ok {
			return
		}
		if cur.State == model.CarDNF {
			continue
		}
		if pit.AdvancePenalty(cur) {
			s.l.Debug("pit penalty turn", log.String("car", cur.CarID))
			continue
		}
		return
	}
}

// Retire marks the car DNF. It stops occupying its cell and the rotation
// skips over it from now on.
func (s *Session) Retire(carID string) error {
	car, ok := s.Car(carID)
	if !ok {
		return ErrUnknownCar
	}
	car.State = model.CarDNF
	s.l.Info("car retired", log.String("car", carID), log.Int("lap", car.LapCount))
	if s.turn.Current() == carID {
		s.endTurn()
	}
	return nil
}
