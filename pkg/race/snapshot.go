package race

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/pitlane-dev/gridrace/pkg/model"
	"github.com/pitlane-dev/gridrace/pkg/race/bot"
	"github.com/pitlane-dev/gridrace/pkg/race/reach"
)

//nolint:tagliatelle // camelCase on the wire
type (
	// SnapshotTarget is one legal target of the active car, keyed by cell id
	// instead of the dense index so tooling can read it without the track.
	SnapshotTarget struct {
		CellID string `json:"cellId"`
		reach.TargetInfo
	}
	CarSnapshot struct {
		CarID             string         `json:"carId"`
		CellID            string         `json:"cellId"`
		Lap               int            `json:"lap"`
		Tire              int            `json:"tire"`
		Fuel              int            `json:"fuel"`
		State             model.CarState `json:"state"`
		PitTurnsRemaining int            `json:"pitTurnsRemaining,omitempty"`
		PitServiced       bool           `json:"pitServiced,omitempty"`
		PitExitBoost      bool           `json:"pitExitBoost,omitempty"`
	}
	// Snapshot is the debug/audit serialization of a session. It is not
	// authoritative state, just a view for tooling.
	Snapshot struct {
		RaceID    string           `json:"raceId"`
		TrackID   string           `json:"trackId"`
		Turn      int              `json:"turn"`
		ActiveCar string           `json:"activeCar"`
		Cars      []CarSnapshot    `json:"cars"`
		Standings []Standing       `json:"standings"`
		Targets   []SnapshotTarget `json:"targets,omitempty"`
		BotTraces []bot.Decision   `json:"botTraces,omitempty"`
	}
)

// Snapshot captures the current session state. Short mode drops the verbose
// target list and bot traces.
func (s *Session) Snapshot(short bool) *Snapshot {
	snap := &Snapshot{
		RaceID:    s.id.String(),
		TrackID:   s.ix.TrackID(),
		Turn:      s.turnNo,
		ActiveCar: s.turn.Current(),
		Cars: lo.Map(s.cars, func(c *model.Car, _ int) CarSnapshot {
			return CarSnapshot{
				CarID:             c.CarID,
				CellID:            s.ix.CellID(c.Cell),
				Lap:               c.LapCount,
				Tire:              c.Tire,
				Fuel:              c.Fuel,
				State:             c.State,
				PitTurnsRemaining: c.PitTurnsRemaining,
				PitServiced:       c.PitServiced,
				PitExitBoost:      c.PitExitBoost,
			}
		}),
		Standings: s.Standings(),
	}
	if short {
		return snap
	}
	if targets, err := s.LegalTargets(snap.ActiveCar); err == nil {
		snap.Targets = lo.MapToSlice(targets, func(cell int, info reach.TargetInfo) SnapshotTarget {
			return SnapshotTarget{CellID: s.ix.CellID(cell), TargetInfo: info}
		})
		slices.SortFunc(snap.Targets, func(a, b SnapshotTarget) int {
			return strings.Compare(a.CellID, b.CellID)
		})
	}
	snap.BotTraces = append([]bot.Decision{}, s.traces...)
	return snap
}
