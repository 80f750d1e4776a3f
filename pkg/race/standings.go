package race

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"github.com/pitlane-dev/gridrace/pkg/model"
)

// Standing is one row of the live classification.
type Standing struct {
	Position int            `json:"position"`
	CarID    string         `json:"carId"` //nolint:tagliatelle // camelCase on the wire
	Lap      int            `json:"lap"`
	Progress float64        `json:"progress"`
	State    model.CarState `json:"state"`
}

// Standings ranks the field: lap count descending, then normalized progress
// descending, tie-broken by rotation order and car id. DNF cars always rank
// last, ordered by their position at retirement. Before the first committed
// move the grid ordering applies instead: cars at or past the start line
// (low progress) rank ahead of cars staged behind it.
func (s *Session) Standings() []Standing {
	rows := lo.Map(s.cars, func(c *model.Car, _ int) Standing {
		return Standing{
			CarID:    c.CarID,
			Lap:      c.LapCount,
			Progress: s.ix.Progress(c.Cell),
			State:    c.State,
		}
	})

	gridOrder := s.commits == 0
	slices.SortStableFunc(rows, func(a, b Standing) int {
		if c := cmp.Compare(dnfRank(a), dnfRank(b)); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Lap, a.Lap); c != 0 {
			return c
		}
		var c int
		if gridOrder {
			c = cmp.Compare(a.Progress, b.Progress)
		} else {
			c = cmp.Compare(b.Progress, a.Progress)
		}
		if c != 0 {
			return c
		}
		if c := cmp.Compare(s.turn.rotationRank(a.CarID), s.turn.rotationRank(b.CarID)); c != 0 {
			return c
		}
		return cmp.Compare(a.CarID, b.CarID)
	})

	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

func dnfRank(s Standing) int {
	if s.State == model.CarDNF {
		return 1
	}
	return 0
}
